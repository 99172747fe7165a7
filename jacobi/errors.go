package jacobi

import "errors"

var (
	//ErrBadBox is returned for non-positive box sizes or ports that do not fit.
	ErrBadBox = errors.New("jacobi: invalid box")
	//ErrBadHeader is returned when a data file does not start with "rows cols".
	ErrBadHeader = errors.New("jacobi: malformed header")
	//ErrBadRecord is returned for malformed or out of range cell lines.
	ErrBadRecord = errors.New("jacobi: malformed record")
	//ErrShortFile is returned when a data file ends before every cell is read.
	ErrShortFile = errors.New("jacobi: unexpected end of data")
)
