package service

import (
	"context"
	"encoding/binary"
	"errors"

	"fingerprintd/internal/core/sensor"
	perr "fingerprintd/internal/platform/errors"

	auditdom "fingerprintd/internal/services/audit/domain"
	"fingerprintd/internal/services/api/biometrics/domain"
)

type state uint8

const (
	stateClosed state = iota
	stateOpen
)

// session is only touched with Svc.mu held
type session struct {
	state  state
	dev    sensor.Handle
	db     sensor.Handle
	width  int
	height int
}

var errNotOpen = perr.New(perr.ErrorCodeNotOpen, "sensor is not open")

func (s *Svc) requireOpen() error {
	if s.sess.state != stateOpen {
		return errNotOpen
	}
	return nil
}

// Open brings the sensor up; calling it on an open session does nothing
func (s *Svc) Open(ctx context.Context) (err error) {
	t := s.begin(auditdom.KindOpen, false)
	defer func() { s.finish(ctx, t, domain.NoMatch, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open(ctx)
}

func (s *Svc) open(ctx context.Context) error {
	if s.sess.state == stateOpen {
		return nil
	}
	log := s.log(ctx)

	if err := s.drv.Initialize(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInitialization, "initialize driver failed (ret=%d)", sensor.CodeOf(err))
	}

	var dev, db sensor.Handle
	// fail releases what this attempt acquired, newest first
	fail := func(cause error, msg string) error {
		if db.Valid() {
			if err := s.drv.DestroyMatchDB(db); err != nil {
				log.Warn().Err(err).Msg("unwind: destroy match database")
			}
		}
		if dev.Valid() {
			if err := s.drv.CloseDevice(dev); err != nil {
				log.Warn().Err(err).Msg("unwind: close device")
			}
		}
		if err := s.drv.Shutdown(); err != nil {
			log.Warn().Err(err).Msg("unwind: shutdown driver")
		}
		return perr.Wrap(cause, perr.ErrorCodeInitialization, msg)
	}

	if n := s.drv.DeviceCount(); n <= 0 {
		var cause error
		if n < 0 {
			cause = sensor.Status("DeviceCount", n)
		}
		return fail(cause, "no fingerprint devices connected")
	}
	if dev = s.drv.OpenDevice(0); !dev.Valid() {
		return fail(nil, "open device failed")
	}
	if db = s.drv.CreateMatchDB(); !db.Valid() {
		return fail(nil, "create match database failed")
	}

	// older and newer firmware use different codes, either may be unsupported
	v10 := binary.LittleEndian.AppendUint32(nil, sensor.TemplateVersion10)
	for _, code := range []sensor.ParamCode{sensor.ParamTemplateType, sensor.ParamTemplateTypeExt} {
		if err := s.drv.SetParameter(dev, code, v10); err != nil {
			log.Warn().Err(err).Int("param", int(code)).Msg("template format not set, keeping device default")
		}
	}

	w, err := s.param(dev, sensor.ParamImageWidth)
	if err != nil {
		return fail(err, "read image width failed")
	}
	h, err := s.param(dev, sensor.ParamImageHeight)
	if err != nil {
		return fail(err, "read image height failed")
	}

	s.sess = session{state: stateOpen, dev: dev, db: db, width: w, height: h}
	log.Info().Int("width", w).Int("height", h).Msg("sensor open")
	return nil
}

func (s *Svc) param(dev sensor.Handle, code sensor.ParamCode) (int, error) {
	buf := make([]byte, 4)
	n, err := s.drv.GetParameter(dev, code, buf)
	if err != nil {
		return 0, err
	}
	if n < len(buf) {
		return 0, sensor.Status("GetParameter", sensor.StatusInvalidParam)
	}
	v := int(int32(binary.LittleEndian.Uint32(buf)))
	if v <= 0 {
		return 0, sensor.Status("GetParameter", sensor.StatusInvalidParam)
	}
	return v, nil
}

// Close releases the sensor. Every step runs even after a failure and the
// session ends Closed either way; step failures come back joined
func (s *Svc) Close(ctx context.Context) (err error) {
	t := s.begin(auditdom.KindClose, false)
	defer func() { s.finish(ctx, t, domain.NoMatch, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.close(ctx)
}

func (s *Svc) close(ctx context.Context) error {
	if s.sess.state != stateOpen {
		return nil
	}
	log := s.log(ctx)
	sess := s.sess
	s.sess = session{}

	var errs []error
	step := func(name string, err error) {
		if err != nil {
			log.Error().Err(err).Str("step", name).Msg("close step failed")
			errs = append(errs, err)
		}
	}
	step("destroy match database", s.drv.DestroyMatchDB(sess.db))
	step("close device", s.drv.CloseDevice(sess.dev))
	step("shutdown driver", s.drv.Shutdown())

	if err := perr.WrapIf(errors.Join(errs...), perr.ErrorCodeDriver, "sensor closed with errors"); err != nil {
		return err
	}
	log.Info().Msg("sensor closed")
	return nil
}

// Ready reports whether the session is Open
func (s *Svc) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.state == stateOpen
}

// Dimensions returns the cached image geometry, NotOpen when Closed
func (s *Svc) Dimensions() (width, height int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOpen(); err != nil {
		return 0, 0, err
	}
	return s.sess.width, s.sess.height, nil
}
