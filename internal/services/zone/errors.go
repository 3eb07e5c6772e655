package zone

// ZoneError is a custom error type for zone-related errors
type ZoneError string

// Error implements the error interface
func (e ZoneError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrZoneExists       ZoneError = "a zone with that name already exists"
	ErrZoneNotFound     ZoneError = "zone not found"
	ErrInvalidZoneName  ZoneError = "invalid zone name"
	ErrInvalidRadius    ZoneError = "radius must be positive"
	ErrInvalidShape     ZoneError = "invalid zone shape"
	ErrInvalidZoneType  ZoneError = "invalid zone type"
	ErrEffectRequired   ZoneError = "effect zones require an effect"
	ErrUnexpectedEffect ZoneError = "only effect zones take an effect"
	ErrNilConfig        ZoneError = "config cannot be nil"
	ErrNilGate          ZoneError = "lifecycle gate cannot be nil"
	ErrNilEliminations  ZoneError = "elimination reader cannot be nil"
	ErrNilRoster        ZoneError = "roster cannot be nil"
	ErrNilEffects       ZoneError = "effects cannot be nil"
	ErrNilEliminator    ZoneError = "eliminator cannot be nil"
)
