//go:build zkfp && cgo

// Package zkfp binds the ZKTeco ZKFinger SDK (libzkfp) to sensor.Driver.
// Build with -tags zkfp on a host that has the SDK headers and library installed
package zkfp

/*
#cgo LDFLAGS: -lzkfp
#include <stdlib.h>
#include <libzkfp.h>
*/
import "C"

import (
	"unsafe"

	"fingerprintd/internal/core/sensor"
)

// Driver is the libzkfp backed sensor.Driver
type Driver struct{}

// New returns the hardware driver
func New() *Driver { return &Driver{} }

func ptr(b []byte) *C.uchar {
	if len(b) == 0 {
		return nil
	}
	return (*C.uchar)(unsafe.Pointer(&b[0]))
}

// handle converts back to the opaque C handle; it never points into Go memory
func handle(h sensor.Handle) C.HANDLE { return C.HANDLE(unsafe.Pointer(h)) }

func (Driver) Initialize() error {
	ret := int(C.ZKFPM_Init())
	if ret == sensor.StatusAlreadyInit {
		return nil
	}
	return sensor.Status("Initialize", ret)
}

func (Driver) Shutdown() error {
	return sensor.Status("Shutdown", int(C.ZKFPM_Terminate()))
}

func (Driver) DeviceCount() int { return int(C.ZKFPM_GetDeviceCount()) }

func (Driver) OpenDevice(index int) sensor.Handle {
	return sensor.Handle(uintptr(C.ZKFPM_OpenDevice(C.int(index))))
}

func (Driver) CloseDevice(dev sensor.Handle) error {
	return sensor.Status("CloseDevice", int(C.ZKFPM_CloseDevice(handle(dev))))
}

func (Driver) CreateMatchDB() sensor.Handle {
	return sensor.Handle(uintptr(C.ZKFPM_DBInit()))
}

func (Driver) DestroyMatchDB(db sensor.Handle) error {
	return sensor.Status("DestroyMatchDB", int(C.ZKFPM_DBFree(handle(db))))
}

func (Driver) SetParameter(dev sensor.Handle, code sensor.ParamCode, value []byte) error {
	ret := C.ZKFPM_SetParameters(handle(dev), C.int(code), ptr(value), C.uint(len(value)))
	return sensor.Status("SetParameter", int(ret))
}

func (Driver) GetParameter(dev sensor.Handle, code sensor.ParamCode, buf []byte) (int, error) {
	size := C.uint(len(buf))
	ret := C.ZKFPM_GetParameters(handle(dev), C.int(code), ptr(buf), &size)
	if err := sensor.Status("GetParameter", int(ret)); err != nil {
		return 0, err
	}
	return int(size), nil
}

func (Driver) CaptureOnce(dev sensor.Handle, image, template []byte) (int, error) {
	size := C.uint(len(template))
	ret := C.ZKFPM_AcquireFingerprint(handle(dev), ptr(image), C.uint(len(image)), ptr(template), &size)
	if err := sensor.Status("CaptureOnce", int(ret)); err != nil {
		return 0, err
	}
	return int(size), nil
}

func (Driver) MatchScore(db sensor.Handle, a, b []byte) int {
	return int(C.ZKFPM_DBMatch(handle(db), ptr(a), C.uint(len(a)), ptr(b), C.uint(len(b))))
}

func (Driver) FuseTemplates(db sensor.Handle, t1, t2, t3, out []byte) (int, error) {
	size := C.uint(len(out))
	ret := C.ZKFPM_DBMerge(handle(db), ptr(t1), ptr(t2), ptr(t3), ptr(out), &size)
	if err := sensor.Status("FuseTemplates", int(ret)); err != nil {
		return 0, err
	}
	return int(size), nil
}

func (Driver) ClearDB(db sensor.Handle) error {
	return sensor.Status("ClearDB", int(C.ZKFPM_DBClear(handle(db))))
}

func (Driver) AddIdentity(db sensor.Handle, id uint32, template []byte) error {
	ret := C.ZKFPM_DBAdd(handle(db), C.uint(id), ptr(template), C.uint(len(template)))
	return sensor.Status("AddIdentity", int(ret))
}

func (Driver) IdentifyBest(db sensor.Handle, live []byte) (uint32, int, error) {
	var fid, score C.uint
	ret := C.ZKFPM_DBIdentify(handle(db), ptr(live), C.uint(len(live)), &fid, &score)
	if err := sensor.Status("IdentifyBest", int(ret)); err != nil {
		return 0, 0, err
	}
	return uint32(fid), int(score), nil
}

var _ sensor.Driver = Driver{}
