package model

// DemoOrder returns the reference instance used for demonstrations: fifteen
// widths on 100 mm master rolls. When capped is true at most 120 rolls may
// be cut.
func DemoOrder(capped bool) Order {
	widths := []int{6, 11, 17, 21, 24, 28, 30, 33, 42, 49, 56, 69, 74, 87, 91}
	demands := []int{9, 6, 20, 30, 17, 19, 25, 12, 8, 20, 5, 14, 15, 18, 10}
	o := NewOrder("demo", 100, widths, demands)
	if capped {
		o.AvailableRolls = 120
	}
	return o
}
