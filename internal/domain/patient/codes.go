package patient

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Identifier generation. The random loops are an optimization only; the
// unique indexes on mri_code and serial_number are the real backstop, and
// insert-time collisions are retried by the service.

// NewMRICode returns a candidate human-facing code like G2G-MRI-4821.
func NewMRICode() string {
	return fmt.Sprintf("G2G-MRI-%04d", 1000+rand.Intn(9000))
}

// NewSerialNumber returns a candidate serial like SN-1718000000000-0042.
func NewSerialNumber() string {
	return fmt.Sprintf("SN-%d-%04d", time.Now().UnixMilli(), rand.Intn(10000))
}

// NewReceiptNumber returns the canonical receipt number,
// REC-<base36 millis>-<base36 random> uppercased.
func NewReceiptNumber() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	rnd := strconv.FormatInt(int64(rand.Intn(36*36*36*36)), 36)
	return strings.ToUpper("REC-" + ts + "-" + rnd)
}
