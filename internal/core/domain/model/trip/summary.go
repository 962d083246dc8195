package trip

import "offroute/internal/core/domain/model/kernel"

// Summary is the read-only context of a trip owned by other bounded
// contexts: the order it serves, who drives it and with which vehicle.
type Summary struct {
	TripID        kernel.UUID
	OrderID       kernel.UUID
	OrderCode     string
	TrackingCode  string
	DriverName    string
	DriverPhone   string
	DriverLicense string
	VehiclePlate  string
	VehicleType   string
	SenderName    string
	ReceiverName  string
	PackageCount  int
}

// NotAvailable is shown for summary fields the owning context left empty.
const NotAvailable = "N/A"

// OrDefault returns s, or NotAvailable when s is empty.
func OrDefault(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}
