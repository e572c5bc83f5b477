package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const idCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTransactionID mints a transaction identifier: a TXN prefix, the
// current nanosecond timestamp in base 36, and six random characters. The
// store's primary key constraint backstops the (statistical) uniqueness.
func GenerateTransactionID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixNano(), 36))

	suffix := make([]byte, 6)
	for i := range suffix {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(idCharset))))
		suffix[i] = idCharset[num.Int64()]
	}

	return fmt.Sprintf("TXN%s%s", ts, string(suffix))
}

// GenerateSettlementRef returns a 12-digit numeric settlement reference drawn
// uniformly from [100000000000, 999999999999]. References are not deduplicated.
func GenerateSettlementRef() string {
	num, _ := rand.Int(rand.Reader, big.NewInt(900000000000))
	return strconv.FormatInt(100000000000+num.Int64(), 10)
}
