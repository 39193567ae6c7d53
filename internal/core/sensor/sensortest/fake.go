// Package sensortest provides a scripted in-memory sensor.Driver for tests
package sensortest

import (
	"bytes"
	"encoding/binary"
	"sync"

	"fingerprintd/internal/core/sensor"
)

// Capture is one scripted CaptureOnce outcome
// a nil Err with a Template means a successful read
type Capture struct {
	Template []byte
	Err      error
}

// Finger returns a successful capture of tpl
func Finger(tpl []byte) Capture { return Capture{Template: tpl} }

// NoFinger returns the transient "nothing on the glass" outcome
func NoFinger() Capture {
	return Capture{Err: &sensor.StatusError{Op: "CaptureOnce", Code: sensor.StatusCapture}}
}

// Fake is a deterministic sensor.Driver that records every call.
// Zero value is a healthy single-device sensor with a 4x4 image
type Fake struct {
	mu    sync.Mutex
	calls []string

	InitErr     error
	ShutdownErr error
	Count       *int
	Dev         sensor.Handle
	DB          sensor.Handle
	NoDevHandle bool
	NoDBHandle  bool
	CloseDevErr error
	FreeDBErr   error
	SetParamErr error
	GetParamErr error
	Width       int
	Height      int

	// Captures is consumed in order; once empty Idle is returned (default NoFinger)
	Captures []Capture
	Idle     *Capture

	// Match scores two templates; default is 100 for equal bytes, else 0
	Match func(a, b []byte) int

	FuseErr error
	Fused   []byte
	fuseIn  [][]byte

	ClearErr error
	AddErr   func(id uint32) error

	// IdentifyErr forces IdentifyBest to fail
	IdentifyErr error

	ids  []uint32
	tpls map[uint32][]byte
}

func (f *Fake) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

// Calls returns a copy of recorded call names in order
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount reports how many times op was invoked
func (f *Fake) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls
func (f *Fake) Reset() {
	f.mu.Lock()
	f.calls = nil
	f.mu.Unlock()
}

// Loaded returns the ids currently in the match database in insertion order
func (f *Fake) Loaded() []uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uint32(nil), f.ids...)
}

func (f *Fake) Initialize() error { f.record("Initialize"); return f.InitErr }

func (f *Fake) Shutdown() error { f.record("Shutdown"); return f.ShutdownErr }

func (f *Fake) DeviceCount() int {
	f.record("DeviceCount")
	if f.Count != nil {
		return *f.Count
	}
	return 1
}

func (f *Fake) OpenDevice(int) sensor.Handle {
	f.record("OpenDevice")
	if f.NoDevHandle {
		return 0
	}
	if f.Dev != 0 {
		return f.Dev
	}
	return 0x10
}

func (f *Fake) CloseDevice(sensor.Handle) error { f.record("CloseDevice"); return f.CloseDevErr }

func (f *Fake) CreateMatchDB() sensor.Handle {
	f.record("CreateMatchDB")
	if f.NoDBHandle {
		return 0
	}
	if f.DB != 0 {
		return f.DB
	}
	return 0x20
}

func (f *Fake) DestroyMatchDB(sensor.Handle) error { f.record("DestroyMatchDB"); return f.FreeDBErr }

func (f *Fake) SetParameter(sensor.Handle, sensor.ParamCode, []byte) error {
	f.record("SetParameter")
	return f.SetParamErr
}

func (f *Fake) GetParameter(_ sensor.Handle, code sensor.ParamCode, buf []byte) (int, error) {
	f.record("GetParameter")
	if f.GetParamErr != nil {
		return 0, f.GetParamErr
	}
	v := 0
	switch code {
	case sensor.ParamImageWidth:
		v = orDefault(f.Width, 4)
	case sensor.ParamImageHeight:
		v = orDefault(f.Height, 4)
	}
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return 4, nil
}

func (f *Fake) CaptureOnce(_ sensor.Handle, _, template []byte) (int, error) {
	f.record("CaptureOnce")
	f.mu.Lock()
	var c Capture
	switch {
	case len(f.Captures) > 0:
		c = f.Captures[0]
		f.Captures = f.Captures[1:]
	case f.Idle != nil:
		c = *f.Idle
	default:
		c = NoFinger()
	}
	f.mu.Unlock()
	if c.Err != nil {
		return 0, c.Err
	}
	return copy(template, c.Template), nil
}

func (f *Fake) MatchScore(_ sensor.Handle, a, b []byte) int {
	f.record("MatchScore")
	return f.score(a, b)
}

func (f *Fake) score(a, b []byte) int {
	if f.Match != nil {
		return f.Match(a, b)
	}
	if bytes.Equal(a, b) {
		return 100
	}
	return 0
}

// FuseInputs returns the three templates of the last FuseTemplates call
func (f *Fake) FuseInputs() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fuseIn
}

func (f *Fake) FuseTemplates(_ sensor.Handle, t1, t2, t3, out []byte) (int, error) {
	f.record("FuseTemplates")
	f.mu.Lock()
	f.fuseIn = [][]byte{bytes.Clone(t1), bytes.Clone(t2), bytes.Clone(t3)}
	f.mu.Unlock()
	if f.FuseErr != nil {
		return 0, f.FuseErr
	}
	src := f.Fused
	if src == nil {
		src = t1
	}
	return copy(out, src), nil
}

func (f *Fake) ClearDB(sensor.Handle) error {
	f.record("ClearDB")
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.mu.Lock()
	f.ids = nil
	f.tpls = nil
	f.mu.Unlock()
	return nil
}

func (f *Fake) AddIdentity(_ sensor.Handle, id uint32, template []byte) error {
	f.record("AddIdentity")
	if f.AddErr != nil {
		if err := f.AddErr(id); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tpls == nil {
		f.tpls = map[uint32][]byte{}
	}
	if _, ok := f.tpls[id]; !ok {
		f.ids = append(f.ids, id)
	}
	f.tpls[id] = append([]byte(nil), template...)
	return nil
}

func (f *Fake) IdentifyBest(_ sensor.Handle, live []byte) (uint32, int, error) {
	f.record("IdentifyBest")
	if f.IdentifyErr != nil {
		return 0, 0, f.IdentifyErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	bestID, bestScore := uint32(0), -1
	for _, id := range f.ids {
		if s := f.score(f.tpls[id], live); s > bestScore {
			bestID, bestScore = id, s
		}
	}
	if bestScore <= 0 {
		return 0, 0, &sensor.StatusError{Op: "IdentifyBest", Code: sensor.StatusVerify}
	}
	return bestID, bestScore, nil
}

// IntPtr is a tiny helper for Fake.Count
func IntPtr(v int) *int { return &v }

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

var _ sensor.Driver = (*Fake)(nil)
