package jacobi

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gonum.org/v1/gonum/mat"
)

//DefaultScaling is the exponent applied to the squared speed on output.
const DefaultScaling = 0.1

//Velocity at interior cell (i,j) of psi: x from the column difference,
//y from the row difference.
func Velocity(psi mat.Matrix, i, j int) (vx, vy float64) {
	vx = (psi.At(i, j+1) - psi.At(i, j-1)) / 2
	vy = (psi.At(i-1, j) - psi.At(i+1, j)) / 2
	return vx, vy
}

//WriteData writes the header and one record per interior cell of psi.
func WriteData(w io.Writer, psi mat.Matrix, scaling float64) error {
	rows, cols := psi.Dims()
	m, n := rows-2, cols-2
	if m < 1 || n < 1 {
		return fmt.Errorf("%w: %dx%d grid has no interior", ErrBadBox, rows, cols)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", m, n)
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			vx, vy := Velocity(psi, i, j)
			speed := (vx + vy) * (vx + vy)
			fmt.Fprintf(bw, "%5d %5d %s %s %s\n", i-1, j-1,
				formatFloat(vx), formatFloat(vy), formatFloat(math.Pow(speed, scaling)))
		}
	}
	return bw.Flush()
}

//formatFloat writes the shortest round-tripping decimal with a trailing ".0"
//on integral values, switching to exponent form below 1e-4 and from 1e16.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

//SaveData writes psi to path on fs, creating the directory.
func SaveData(fs afero.Fs, path string, psi mat.Matrix, scaling float64) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := WriteData(f, psi, scaling); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

//Flow is a parsed data file. Grids are (Rows+2)x(Cols+2); record (i,j)
//lands at grid position (i,j) as written, leaving the last two rows and
//columns zero.
type Flow struct {
	Rows, Cols int
	Vx, Vy     *mat.Dense
	Speed      *mat.Dense
}

//ReadData parses the header and exactly Rows*Cols records.
func ReadData(r io.Reader) (*Flow, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: empty input", ErrBadHeader)
	}
	head := strings.Fields(sc.Text())
	if len(head) != 2 {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, sc.Text())
	}
	m, err1 := strconv.Atoi(head[0])
	n, err2 := strconv.Atoi(head[1])
	if err1 != nil || err2 != nil || m < 1 || n < 1 {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, sc.Text())
	}
	fl := &Flow{
		Rows:  m,
		Cols:  n,
		Vx:    mat.NewDense(m+2, n+2, nil),
		Vy:    mat.NewDense(m+2, n+2, nil),
		Speed: mat.NewDense(m+2, n+2, nil),
	}
	for rec := 0; rec < m*n; rec++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: got %d of %d records", ErrShortFile, rec, m*n)
		}
		if err := fl.parseRecord(sc.Text()); err != nil {
			return nil, fmt.Errorf("record %d: %w", rec+1, err)
		}
	}
	return fl, sc.Err()
}

func (fl *Flow) parseRecord(line string) error {
	tok := strings.Fields(line)
	if len(tok) != 5 {
		return fmt.Errorf("%w: %q", ErrBadRecord, line)
	}
	i, err := strconv.Atoi(tok[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	j, err := strconv.Atoi(tok[1])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	if i < 0 || i >= fl.Rows+2 || j < 0 || j >= fl.Cols+2 {
		return fmt.Errorf("%w: cell (%d,%d) outside %dx%d", ErrBadRecord, i, j, fl.Rows, fl.Cols)
	}
	var v [3]float64
	for k := range v {
		if v[k], err = strconv.ParseFloat(tok[2+k], 64); err != nil {
			return fmt.Errorf("%w: %v", ErrBadRecord, err)
		}
	}
	fl.Vx.Set(i, j, v[0])
	fl.Vy.Set(i, j, v[1])
	fl.Speed.Set(i, j, v[2])
	return nil
}

//LoadData reads a data file from fs.
func LoadData(fs afero.Fs, path string) (*Flow, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadData(f)
}
