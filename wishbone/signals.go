package wishbone

// MasterSignals is the bundle of bus signals driven by the master side.
//
// Stb and Cyc are always driven to the same value, as this package only
// models single READ/WRITE cycles.
type MasterSignals struct {
	Adr uint64
	Dat uint64
	Sel uint64
	We  bool
	Stb bool
	Cyc bool
}

// NewMasterSignals returns a bundle with every signal negated.
func NewMasterSignals() MasterSignals {
	return MasterSignals{}
}

// Reset negates every signal in the bundle. Every field is assigned
// explicitly so that adding a signal without extending this method is caught
// by review rather than by a floating line.
func (s *MasterSignals) Reset() {
	s.Adr = 0
	s.Dat = 0
	s.Sel = 0
	s.We = false
	s.Stb = false
	s.Cyc = false
}

// SlaveSignals is the bundle of bus signals driven by the slave side.
//
// The err and rty termination signals of the full protocol are not modeled;
// ack is the only cycle termination.
type SlaveSignals struct {
	Dat uint64
	Ack bool
}

// NewSlaveSignals returns a bundle with every signal negated.
func NewSlaveSignals() SlaveSignals {
	return SlaveSignals{}
}

// Reset negates every signal in the bundle.
func (s *SlaveSignals) Reset() {
	s.Dat = 0
	s.Ack = false
}
