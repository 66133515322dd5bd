package rowexec

import "io"

// errEOF is returned by every operator once its source is exhausted,
// matching sql.MorselIterator's documented Next contract.
var errEOF = io.EOF
