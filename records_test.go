package wave

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

func recordStream(recl int, records ...[]float64) *bytes.Buffer {
	buf := new(bytes.Buffer)
	for _, rec := range records {
		binary.Write(buf, binary.LittleEndian, rec)
		buf.Write(make([]byte, recl-len(rec)*8))
	}
	return buf
}

func TestRecordPadding(Te *testing.T) {
	buf := recordStream(40, []float64{1, 2}, []float64{3, 4, 5})
	rr := &recordReader{r: buf, recl: 40}
	got := make([]float64, 2)
	if err := rr.float64s(got); err != nil {
		Te.Fatal(err)
	}
	if got[0] != 1 || got[1] != 2 {
		Te.Errorf("first record: %v", got)
	}
	if err := rr.advance(); err != nil {
		Te.Fatal(err)
	}
	got = make([]float64, 3)
	if err := rr.float64s(got); err != nil {
		Te.Fatal(err)
	}
	if got[0] != 3 || got[2] != 5 {
		Te.Errorf("second record: %v", got)
	}
}

func TestRecordOverrun(Te *testing.T) {
	buf := recordStream(16, []float64{1, 2}, []float64{3, 4})
	rr := &recordReader{r: buf, recl: 16}
	got := make([]float64, 3) //longer than a record
	err := rr.float64s(got)
	if err == nil || !strings.Contains(err.Error(), RecordOverrun) {
		Te.Errorf("expected a record overrun error, got %v", err)
	}
}

func TestRecordTruncation(Te *testing.T) {
	buf := recordStream(40, []float64{1, 2})
	rr := &recordReader{r: buf, recl: 40}
	got := make([]float64, 2)
	if err := rr.float64s(got); err != nil {
		Te.Fatal(err)
	}
	if err := rr.advance(); err != nil {
		Te.Fatal(err)
	}
	//the stream has no second record
	err := rr.float64s(got)
	if err == nil || !strings.Contains(err.Error(), TruncatedFile) {
		Te.Errorf("expected a truncation error, got %v", err)
	}
}

func TestRecordLengthValidation(Te *testing.T) {
	for _, recl := range []int64{0, -8, 20, 7} {
		rr := &recordReader{r: new(bytes.Buffer), recl: 24}
		err := rr.setLength(recl)
		if err == nil || !strings.Contains(err.Error(), WrongRecordLength) {
			Te.Errorf("record length %d: expected an error, got %v", recl, err)
		}
	}
	rr := &recordReader{r: new(bytes.Buffer), recl: 24, pos: 24}
	if err := rr.setLength(16); err == nil {
		Te.Error("a record length shorter than the bytes already consumed must be rejected")
	}
	if err := rr.setLength(48); err != nil {
		Te.Error(err)
	}
}
