package module

import dom "fingerprintd/internal/services/audit/domain"

// Ports holds the ports exposed by the audit module
type Ports struct {
	Recorder dom.RecorderPort
	Worker   dom.WorkerPort
}
