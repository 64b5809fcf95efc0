package flatipc

// Twin is declared identically in flatipc_test, so the two share a
// signature while living in different packages.
type Twin struct {
	N uint16
}

var twinSignature = SignatureOf("record Twin{N uint16;}")

func (Twin) IPCSafe()          {}
func (Twin) Signature() uint32 { return twinSignature }
