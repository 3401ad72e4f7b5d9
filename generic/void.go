package generic

// Void is the empty value, for when a type parameter needs to carry nothing.
type Void = struct{}

func NewVoid() Void {
	return Void{}
}
