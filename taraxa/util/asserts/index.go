package asserts

import "fmt"

// Holds panics with msg when condition is false.
func Holds(condition bool, msg ...interface{}) bool {
	if !condition {
		if len(msg) == 0 {
			panic("assertion error")
		}
		panic(fmt.Sprint(msg...))
	}
	return true
}
