package vulkan

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// isError and newError mirror legacy/asche/errors.go's panic/recover idiom:
// every vk.Result-returning call is wrapped with orPanic, and every public
// entry point defers checkErr to turn the panic back into a plain error the
// backend logs and swallows, per spec.md §7's "errors surface as a logged
// message plus a null handle" policy.
func isError(ret vk.Result) bool {
	return ret != vk.Success
}

func newError(ret vk.Result) error {
	if ret != vk.Success {
		return fmt.Errorf("vulkan: result %d", ret)
	}
	return nil
}

func orPanic(err error) {
	if err != nil {
		panic(err)
	}
}

func checkErr(err *error) {
	if v := recover(); v != nil {
		*err = fmt.Errorf("%+v", v)
	}
}

// vkCheck is the common "call, wrap, orPanic" sequence condensed to one line.
func vkCheck(ret vk.Result) {
	orPanic(newError(ret))
}
