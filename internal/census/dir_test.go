package census

import "bytes"
import "encoding/gob"
import "fmt"
import "io"
import "os"
import "path"
import "testing"
import "time"

import "github.com/HectorHW/aquarium/internal/opcode"

type closeBuffer struct {
	bytes.Buffer
	Closed bool
}

func (c *closeBuffer) Close() error {
	c.Closed = true
	return nil
}

func encoded(t *testing.T, p Population) io.ReadWriteCloser {
	var b closeBuffer
	enc := gob.NewEncoder(&b.Buffer)
	if err := enc.Encode(p); err != nil {
		t.Fatalf("unable to encode %v: %v", p, err)
	}
	return &b
}

func decoded(t *testing.T, b *closeBuffer) Population {
	var p Population
	dec := gob.NewDecoder(b)
	if err := dec.Decode(&p); err != nil {
		t.Fatalf("unable to decode %v: %v", p, err)
	}
	return p
}

type fi struct {
	N string
}

func (f fi) Name() string       { return f.N }
func (f fi) Size() int64        { return 0 }
func (f fi) Mode() os.FileMode  { return os.FileMode(0777) }
func (f fi) ModTime() time.Time { return time.Now() }
func (f fi) IsDir() bool        { return false }
func (f fi) Sys() interface{}   { return nil }

// twoGenomes returns two distinct programs and the filenames their
// genome hashes map to under dir, for tests that need to exercise
// DirCensus's hash-named persistence without hardcoding the hash values.
func twoGenomes(dir string) (a, b opcode.Program, fileA, fileB string) {
	a = opcode.Green()
	b = a
	b[0] = opcode.Opcode{Code: opcode.Compare}
	fileA = path.Join(dir, fmt.Sprintf("%x", a.Hash()))
	fileB = path.Join(dir, fmt.Sprintf("%x", b.Hash()))
	return
}

func TestNew(t *testing.T) {
	dir := "/path/foo"
	deps.ReadDir = func(s string) ([]os.FileInfo, error) {
		if s != dir {
			t.Errorf("ReadDir called with wrong path, expected %s, got %s", dir, s)
		}
		return []os.FileInfo{fi{"a"}, fi{"b"}, fi{"c"}}, nil
	}
	deps.MkdirAll = func(_ string, _ os.FileMode) error { return nil }

	d, err := NewDirCensus(dir, nil)
	if err != nil {
		t.Errorf("unexpected error creating dir census: %v", err)
	}
	if d.NumRecorded() != 3 {
		t.Errorf("NumRecorded() expected %d, got %d", 3, d.NumRecorded())
	}
}

func TestGetFromRecord(t *testing.T) {
	dir := "/path/foo"
	genome, badGenome, file, badFile := twoGenomes(dir)

	f := encoded(t, Population{
		Genome: genome,
		Count:  10,
	})

	deps.Open = func(s string) (io.ReadWriteCloser, error) {
		if s == file {
			return f, nil
		} else {
			if s != badFile {
				t.Errorf("Open called with unexpected filename, expected %s or %s, got %v", file, badFile, s)
			}
			return nil, os.ErrNotExist
		}
	}

	c := DirCensus{
		Dir: dir,
	}
	if _, err := c.GetFromRecord(badGenome); err != os.ErrNotExist {
		t.Errorf("GetFromRecord with unrecorded genome should generate os.ErrNotExist, got %v", err)
	}
	p, err := c.GetFromRecord(genome)
	if err != nil {
		t.Errorf("got error %v reading valid genome", err)
	}
	if p.Count != 10 {
		t.Errorf("retrieved count was wrong, expected 10, got %v", p.Count)
	}
}

func TestIsRecorded(t *testing.T) {
	dir := "/path/foo"
	genome, badGenome, file, badFile := twoGenomes(dir)

	deps.Stat = func(s string) (os.FileInfo, error) {
		if s == file {
			return fi{file}, nil
		} else if s == badFile {
			return fi{}, os.ErrNotExist
		}
		t.Errorf("Stat called with unexpected file, expected %s or %s, got %v", file, badFile, s)
		return fi{}, os.ErrNotExist
	}

	c := DirCensus{Dir: dir}
	if !c.IsRecorded(genome) {
		t.Errorf("IsRecorded(%v) should be true but was not", genome)
	}
	if c.IsRecorded(badGenome) {
		t.Errorf("IsRecorded(%v) should be false but was not", badGenome)
	}
}

func TestRecord(t *testing.T) {
	dir := "/path/foo"
	genome, _, file, _ := twoGenomes(dir)
	pop := Population{Genome: genome, Count: 10}
	b := &closeBuffer{}

	deps.Create = func(s string) (io.ReadWriteCloser, error) {
		if s == file {
			return b, nil
		}
		t.Errorf("Create called with unexpected filename, wanted %v got %v", file, s)
		return nil, os.ErrNotExist
	}

	c := DirCensus{Dir: dir}
	err := c.Record(pop)
	if err != nil {
		t.Errorf("Record should not have resulted in error, got %v", err)
	}
	p := decoded(t, b)
	if p.Count != 10 {
		t.Errorf("Count should be 10, got %v", p.Count)
	}
	if p.Genome != genome {
		t.Errorf("genome did not survive encoding, expected %v, got %v", genome, p.Genome)
	}
}

func TestAdd(t *testing.T) {
	dir := "/path/foo"
	genome1, genome2, _, file2 := twoGenomes(dir)
	filt := func(p Population) bool { return p.Count > 2 }

	var ok bool
	b := &closeBuffer{}
	deps.Stat = func(s string) (os.FileInfo, error) { return nil, os.ErrNotExist }
	deps.Create = func(s string) (io.ReadWriteCloser, error) {
		if s == file2 {
			ok = true
			return b, nil
		}
		t.Errorf("Create called with unexpected filename, wanted %v got %v", file2, s)
		return nil, os.ErrNotExist
	}

	c := DirCensus{Dir: dir, Threshold: filt}
	if c.NumRecorded() != 0 {
		t.Errorf("Unexpected NumRecorded(), expected 0 got %v", c.NumRecorded())
	}
	c.Add(20, genome1)
	c.Add(21, genome1)
	c.Add(30, genome2)
	c.Add(31, genome2)
	c.Add(32, genome2)

	p := decoded(t, b)
	if p.Genome != genome2 {
		t.Errorf("Unexpected genome, expected %v got %+v", genome2, p)
	}
	if p.Count != 3 {
		t.Errorf("Unexpected count, expected 3 got %v", p.Count)
	}
	if c.NumRecorded() != 1 {
		t.Errorf("Unexpected NumRecorded(), expected 1 got %v", c.NumRecorded())
	}
	if !ok {
		t.Errorf("Create was never called")
	}
}

func TestRemove(t *testing.T) {
	dir := "/path/foo"
	genome, _, file, _ := twoGenomes(dir)
	filt := func(p Population) bool { return p.Count > 2 }

	var ok bool
	b := &closeBuffer{}
	deps.Stat = func(s string) (os.FileInfo, error) { return nil, os.ErrNotExist }
	deps.Create = func(s string) (io.ReadWriteCloser, error) {
		if s == file {
			ok = true
			return b, nil
		}
		t.Errorf("Create/Open called with unexpected filename, wanted %v got %v", file, s)
		return nil, os.ErrNotExist
	}
	deps.Open = deps.Create

	c := DirCensus{Dir: dir, Threshold: filt}
	if c.NumRecorded() != 0 {
		t.Errorf("Unexpected NumRecorded(), expected 0 got %v", c.NumRecorded())
	}
	c.Add(20, genome)
	c.Add(21, genome)
	c.Add(22, genome)
	b.Reset()
	deps.Stat = func(s string) (os.FileInfo, error) { return fi{s}, nil }
	c.Remove(23, genome)
	c.Remove(24, genome)
	p, ok := c.Get(genome)
	if !ok {
		t.Errorf("Get should have returned a population, but didn't")
	} else {
		if p.Count != 1 {
			t.Errorf("Pop count should be 1, got %v", p.Count)
		}
	}
	if b.Len() != 0 {
		t.Errorf("should not have any bytes written with one population count, found %d", b.Len())
	}
	c.Remove(25, genome)

	p = decoded(t, b)
	if p.Genome != genome {
		t.Errorf("Unexpected genome, expected %v got %+v", genome, p)
	}
	if p.Last != 25 {
		t.Errorf("Unexpected last time, expected 25 got %v", p.Last)
	}
}
