package lua

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Errors for Lua state and module operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrModuleNotFound is returned when no search path root holds a module.
	ErrModuleNotFound = errors.New("module not found")

	// ErrInvalidModuleID is returned for malformed dotted identifiers.
	ErrInvalidModuleID = errors.New("invalid module identifier")

	// ErrImportCycle is returned when a module requires itself, directly or not.
	ErrImportCycle = errors.New("import cycle")

	// ErrNotImported is returned when reloading a module that was never imported.
	ErrNotImported = errors.New("module not imported")
)

// ImportError reports a module that failed to import.
type ImportError struct {
	ID   string
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("import %s (%s): %v", e.ID, e.Path, e.Err)
	}
	return fmt.Sprintf("import %s: %v", e.ID, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

const errorTypeName = "addonkit.error"

// RaiseError raises err as a Lua error. The Go error survives the trip
// through Lua and is recovered by Unwrap once the call returns to Go.
func RaiseError(L *lua.LState, err error) {
	ud := L.NewUserData()
	ud.Value = err
	L.SetMetatable(ud, errorMetatable(L))
	L.Error(ud, 0)
}

func errorMetatable(L *lua.LState) lua.LValue {
	mt := L.GetTypeMetatable(errorTypeName)
	if mt != lua.LNil {
		return mt
	}
	tbl := L.NewTypeMetatable(errorTypeName)
	L.SetField(tbl, "__tostring", L.NewFunction(func(L *lua.LState) int {
		ud := L.CheckUserData(1)
		if err, ok := ud.Value.(error); ok {
			L.Push(lua.LString(err.Error()))
		} else {
			L.Push(lua.LString("error"))
		}
		return 1
	}))
	return tbl
}

// Unwrap returns the Go error carried by a Lua error raised with RaiseError,
// or err itself.
func Unwrap(err error) error {
	var apiErr *lua.ApiError
	if !errors.As(err, &apiErr) {
		return err
	}
	if ud, ok := apiErr.Object.(*lua.LUserData); ok {
		if goErr, ok := ud.Value.(error); ok {
			return goErr
		}
	}
	return err
}
