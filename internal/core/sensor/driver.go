// Package sensor defines the capability surface of a fingerprint sensor driver.
// Implementations wrap a vendor SDK (see zkfp) or simulate one (see sim)
package sensor

// Handle is an opaque identifier owned by the driver. Zero is never valid
type Handle uintptr

// Valid reports whether h looks like a usable handle
func (h Handle) Valid() bool { return h != 0 }

// ParamCode selects a device parameter for SetParameter and GetParameter
type ParamCode int

const (
	// ParamImageWidth is the captured image width in pixels
	ParamImageWidth ParamCode = 1

	// ParamImageHeight is the captured image height in pixels
	ParamImageHeight ParamCode = 2

	// ParamTemplateType selects the template format on older firmware
	ParamTemplateType ParamCode = 2007

	// ParamTemplateTypeExt selects the template format on newer firmware
	ParamTemplateTypeExt ParamCode = 10101
)

// TemplateVersion10 is the template format the service asks devices to emit
const TemplateVersion10 = 10

// MaxTemplateSize is the fixed template buffer bound in bytes
const MaxTemplateSize = 2048

// Driver is the vendor capability surface the biometrics service is built on.
// Calls are not safe for concurrent use; callers serialize access.
// Methods returning error report vendor failures as *StatusError
type Driver interface {
	// Initialize brings the driver subsystem up
	Initialize() error
	// Shutdown tears the driver subsystem down
	Shutdown() error
	// DeviceCount reports attached devices, <= 0 means none
	DeviceCount() int

	OpenDevice(index int) Handle
	CloseDevice(dev Handle) error

	CreateMatchDB() Handle
	DestroyMatchDB(db Handle) error

	SetParameter(dev Handle, code ParamCode, value []byte) error
	// GetParameter fills buf and returns the number of bytes written
	GetParameter(dev Handle, code ParamCode, buf []byte) (int, error)

	// CaptureOnce attempts a single acquisition into image and template and
	// returns the template length. A *StatusError means no usable capture
	CaptureOnce(dev Handle, image, template []byte) (int, error)

	// MatchScore compares two templates. Negative values are vendor errors
	MatchScore(db Handle, a, b []byte) int

	// FuseTemplates merges three templates of one finger into out and returns its length
	FuseTemplates(db Handle, t1, t2, t3, out []byte) (int, error)

	ClearDB(db Handle) error
	AddIdentity(db Handle, id uint32, template []byte) error

	// IdentifyBest returns the best candidate in db for the live template
	IdentifyBest(db Handle, live []byte) (id uint32, score int, err error)
}
