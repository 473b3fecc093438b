package security

import (
	"crypto/rand"
	"log"
	"math/big"
	"os"
)

var charset = "qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM1234567890-_|!/"

func stringWithCharset(length int64, charset string) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(charset)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			log.Fatal(err)
		}
		b[i] = charset[n.Int64()]
	}
	return string(b)
}

// NewKeys returns the session cookie hash and block keys. Keys missing
// from the environment are generated and appended to the dotenv file so
// that sessions survive a restart.
func NewKeys(dotenvPath string) ([]byte, []byte) {
	var hashKey []byte
	var blockKey []byte

	hk, hkOk := os.LookupEnv("LMS_HASH_KEY")
	bk, bkOk := os.LookupEnv("LMS_BLOCK_KEY")

	if hkOk {
		hashKey = []byte(hk)
	} else {
		hashKey = []byte(GenerateRandomKey(32))
		WriteToDotenv(dotenvPath, "LMS_HASH_KEY", string(hashKey))
	}
	if bkOk {
		blockKey = []byte(bk)
	} else {
		blockKey = []byte(GenerateRandomKey(24))
		WriteToDotenv(dotenvPath, "LMS_BLOCK_KEY", string(blockKey))
	}
	return hashKey, blockKey
}

func WriteToDotenv(path, name, value string) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Write([]byte(name + "=\"" + value + "\"\n")); err != nil {
		log.Fatal(err)
	}
}

func GenerateRandomKey(length int64) string {
	return stringWithCharset(length, charset)
}
