package patient

import (
	"regexp"
	"testing"
)

func TestNewMRICodeFormat(t *testing.T) {
	re := regexp.MustCompile(`^G2G-MRI-\d{4}$`)
	for i := 0; i < 100; i++ {
		code := NewMRICode()
		if !re.MatchString(code) {
			t.Fatalf("bad mri code %s", code)
		}
	}
}

func TestNewSerialNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^SN-\d+-\d{4}$`)
	for i := 0; i < 100; i++ {
		sn := NewSerialNumber()
		if !re.MatchString(sn) {
			t.Fatalf("bad serial number %s", sn)
		}
	}
}

func TestNewReceiptNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^REC-[0-9A-Z]+-[0-9A-Z]+$`)
	for i := 0; i < 100; i++ {
		rn := NewReceiptNumber()
		if !re.MatchString(rn) {
			t.Fatalf("bad receipt number %s", rn)
		}
	}
}
