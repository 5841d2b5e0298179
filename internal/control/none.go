package control

// Thermostat adjusts molecule motion toward a target model temperature.
type Thermostat interface {
	Adjust(target float64)
}

type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Adjust(target float64) {}
