package instance

// StoreBuilderOption is a functional option for configuring a Store.
type StoreBuilderOption func(*Store)

// WithSpeed sets the movement speed applied by Advance, in world units per second.
//
// Parameters:
//   - speed: units per second along each instance's direction (0 keeps instances static)
//
// Returns:
//   - StoreBuilderOption: option function to apply
func WithSpeed(speed float32) StoreBuilderOption {
	return func(s *Store) {
		s.speed = speed
	}
}
