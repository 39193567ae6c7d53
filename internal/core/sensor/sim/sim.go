// Package sim is an in-process fingerprint sensor used for development and demos.
// Reads of the same finger produce templates that differ in a few bytes, so
// matching, fusion and identification behave like a real device would
package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand"
	"sync"

	"fingerprintd/internal/core/sensor"

	"github.com/emirpasic/gods/maps/treemap"
)

const (
	devHandle sensor.Handle = 0x5101
	dbBase    sensor.Handle = 0x5200
)

const headerLen = 4

var magic = [headerLen]byte{'S', 'I', 'M', 'T'}

// Sensor implements sensor.Driver
type Sensor struct {
	mu      sync.Mutex
	profile Profile

	inited  bool
	opened  bool
	present bool
	finger  string
	reads   int
	params  map[sensor.ParamCode][]byte

	dbs    map[sensor.Handle]*treemap.Map
	nextDB sensor.Handle
}

// New builds a simulated sensor with a finger resting on the glass
func New(p Profile) *Sensor {
	p = p.normalize()
	return &Sensor{
		profile: p,
		present: true,
		finger:  p.Finger,
		params:  map[sensor.ParamCode][]byte{},
		dbs:     map[sensor.Handle]*treemap.Map{},
		nextDB:  dbBase,
	}
}

// Place puts finger on the glass
func (s *Sensor) Place(finger string) {
	s.mu.Lock()
	s.present, s.finger = true, finger
	s.mu.Unlock()
}

// Lift removes the finger, captures then report an empty glass
func (s *Sensor) Lift() {
	s.mu.Lock()
	s.present = false
	s.mu.Unlock()
}

func (s *Sensor) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inited = true
	return nil
}

func (s *Sensor) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inited {
		return sensor.Status("Shutdown", sensor.StatusNotInit)
	}
	s.inited, s.opened = false, false
	s.dbs = map[sensor.Handle]*treemap.Map{}
	return nil
}

func (s *Sensor) DeviceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inited {
		return sensor.StatusNotInit
	}
	return s.profile.Devices
}

func (s *Sensor) OpenDevice(index int) sensor.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inited || index < 0 || index >= s.profile.Devices {
		return 0
	}
	s.opened = true
	return devHandle
}

func (s *Sensor) CloseDevice(dev sensor.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev != devHandle || !s.opened {
		return sensor.Status("CloseDevice", sensor.StatusInvalidHandle)
	}
	s.opened = false
	return nil
}

func (s *Sensor) CreateMatchDB() sensor.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inited {
		return 0
	}
	s.nextDB++
	s.dbs[s.nextDB] = treemap.NewWithIntComparator()
	return s.nextDB
}

func (s *Sensor) DestroyMatchDB(db sensor.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dbs[db]; !ok {
		return sensor.Status("DestroyMatchDB", sensor.StatusInvalidHandle)
	}
	delete(s.dbs, db)
	return nil
}

func (s *Sensor) SetParameter(dev sensor.Handle, code sensor.ParamCode, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev != devHandle || !s.opened {
		return sensor.Status("SetParameter", sensor.StatusNotOpened)
	}
	switch code {
	case sensor.ParamTemplateType, sensor.ParamTemplateTypeExt:
		s.params[code] = append([]byte(nil), value...)
		return nil
	default:
		return sensor.Status("SetParameter", sensor.StatusNotSupported)
	}
}

func (s *Sensor) GetParameter(dev sensor.Handle, code sensor.ParamCode, buf []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev != devHandle || !s.opened {
		return 0, sensor.Status("GetParameter", sensor.StatusNotOpened)
	}
	if len(buf) < 4 {
		return 0, sensor.Status("GetParameter", sensor.StatusInvalidParam)
	}
	var v int
	switch code {
	case sensor.ParamImageWidth:
		v = s.profile.Width
	case sensor.ParamImageHeight:
		v = s.profile.Height
	default:
		if raw, ok := s.params[code]; ok {
			return copy(buf, raw), nil
		}
		return 0, sensor.Status("GetParameter", sensor.StatusNotSupported)
	}
	binary.LittleEndian.PutUint32(buf, uint32(v))
	return 4, nil
}

func (s *Sensor) CaptureOnce(dev sensor.Handle, image, template []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dev != devHandle || !s.opened {
		return 0, sensor.Status("CaptureOnce", sensor.StatusNotOpened)
	}
	s.reads++
	if !s.present || (s.profile.MissEvery > 0 && s.reads%s.profile.MissEvery == 0) {
		return 0, sensor.Status("CaptureOnce", sensor.StatusCapture)
	}
	if len(template) < s.profile.TemplateSize {
		return 0, sensor.Status("CaptureOnce", sensor.StatusNoMemory)
	}

	seed := fingerSeed(s.finger)
	fillImage(image, seed)

	tpl := template[:s.profile.TemplateSize]
	baseTemplate(tpl, seed)
	r := rand.New(rand.NewSource(s.profile.Seed + int64(s.reads)))
	for i := 0; i < s.profile.Jitter; i++ {
		tpl[headerLen+r.Intn(len(tpl)-headerLen)] ^= byte(1 + r.Intn(255))
	}
	return len(tpl), nil
}

func (s *Sensor) MatchScore(_ sensor.Handle, a, b []byte) int {
	return score(a, b)
}

func (s *Sensor) FuseTemplates(db sensor.Handle, t1, t2, t3, out []byte) (int, error) {
	s.mu.Lock()
	_, ok := s.dbs[db]
	s.mu.Unlock()
	if !ok {
		return 0, sensor.Status("FuseTemplates", sensor.StatusInvalidHandle)
	}
	if score(t1, t2) <= 0 || score(t2, t3) <= 0 {
		return 0, sensor.Status("FuseTemplates", sensor.StatusMerge)
	}
	n := min(len(t1), len(t2), len(t3))
	if len(out) < n {
		return 0, sensor.Status("FuseTemplates", sensor.StatusNoMemory)
	}
	for i := 0; i < n; i++ {
		// majority vote per byte, t1 wins a three-way split
		out[i] = t1[i]
		if t2[i] == t3[i] {
			out[i] = t2[i]
		}
	}
	return n, nil
}

func (s *Sensor) ClearDB(db sensor.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.dbs[db]
	if !ok {
		return sensor.Status("ClearDB", sensor.StatusInvalidHandle)
	}
	m.Clear()
	return nil
}

func (s *Sensor) AddIdentity(db sensor.Handle, id uint32, template []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.dbs[db]
	if !ok {
		return sensor.Status("AddIdentity", sensor.StatusInvalidHandle)
	}
	if !validTemplate(template) {
		return sensor.Status("AddIdentity", sensor.StatusAddFinger)
	}
	m.Put(int(id), append([]byte(nil), template...))
	return nil
}

func (s *Sensor) IdentifyBest(db sensor.Handle, live []byte) (uint32, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.dbs[db]
	if !ok {
		return 0, 0, sensor.Status("IdentifyBest", sensor.StatusInvalidHandle)
	}
	bestID, bestScore := 0, 0
	it := m.Iterator()
	for it.Next() {
		if sc := score(it.Value().([]byte), live); sc > bestScore {
			bestID, bestScore = it.Key().(int), sc
		}
	}
	if bestScore <= 0 {
		return 0, 0, sensor.Status("IdentifyBest", sensor.StatusVerify)
	}
	return uint32(bestID), bestScore, nil
}

// score maps byte agreement to 0..100; half agreement or less scores 0
func score(a, b []byte) int {
	if !validTemplate(a) || !validTemplate(b) {
		return sensor.StatusInvalidParam
	}
	n := min(len(a), len(b))
	same := 0
	for i := headerLen; i < n; i++ {
		if a[i] == b[i] {
			same++
		}
	}
	ratio := float64(same) / float64(n-headerLen)
	sc := int((ratio - 0.5) * 200)
	return max(0, min(100, sc))
}

func validTemplate(t []byte) bool {
	return len(t) > headerLen && [headerLen]byte(t[:headerLen]) == magic
}

func fingerSeed(finger string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(finger))
	return int64(h.Sum64())
}

func baseTemplate(dst []byte, seed int64) {
	copy(dst, magic[:])
	r := rand.New(rand.NewSource(seed))
	for i := headerLen; i < len(dst); i++ {
		dst[i] = byte(r.Intn(256))
	}
}

func fillImage(dst []byte, seed int64) {
	for i := range dst {
		dst[i] = byte((int64(i) + seed) & 0xff)
	}
}

var _ sensor.Driver = (*Sensor)(nil)
