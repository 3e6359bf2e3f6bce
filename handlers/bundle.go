// File: handlers/bundle.go
package handlers

// HandlerBundle groups all endpoint handlers for route registration.
type HandlerBundle struct {
	Bookings     *BookingHandler
	Availability *AvailabilityHandler
	Catalog      *CatalogHandler
	Mechanics    *MechanicHandler
	Customers    *CustomerHandler
	Vehicles     *VehicleHandler
	WorkOrders   *WorkOrderHandler
	Admin        *AdminHandler
}
