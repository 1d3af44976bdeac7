package archive

import (
	"fmt"
	"io"
	"os"

	"slam/internal/format"
	"slam/internal/keyschedule"
	"slam/internal/primitives"
	"slam/internal/slamerrors"
)

// openAndAuthenticate implements the shared consumer prelude: open the
// archive, parse and bound-check the header, derive keys from (password,
// header.salt), and verify the header HMAC. It returns state HEADER_AUTH_OK
// on success; any failure leaves the caller in ABORT.
func openAndAuthenticate(archivePath, password string) (f *os.File, header *format.ArchiveHeader, keys *keyschedule.Keys, err error) {
	f, err = os.Open(archivePath)
	if err != nil {
		return nil, nil, nil, slamerrors.NewIoError("open", archivePath, err)
	}

	buf := make([]byte, format.HeaderSize)
	if _, err := readExact(f, buf); err != nil {
		f.Close()
		return nil, nil, nil, err
	}

	header, err = format.ParseHeader(buf)
	if err != nil {
		f.Close()
		return nil, nil, nil, err
	}

	keys, err = keyschedule.Derive([]byte(password), header.Salt[:])
	if err != nil {
		f.Close()
		return nil, nil, nil, fmt.Errorf("%w: %v", slamerrors.ErrCryptoUnavailable, err)
	}

	unauthenticated := header.SerializeUnauthenticated()
	if !primitives.VerifyHeaderHMAC(keys.FileKey.Bytes(), unauthenticated, header.HMAC[:]) {
		keys.Close()
		f.Close()
		return nil, nil, nil, slamerrors.ErrHeaderAuthFail
	}

	return f, header, keys, nil
}

func readExact(f *os.File, buf []byte) (int, error) {
	n, err := io.ReadFull(f, buf)
	if err != nil {
		return n, slamerrors.NewIoError("read", f.Name(), err)
	}
	return n, nil
}

// decryptRegion decrypts a packed [ciphertext||nonce||tag] region under key
// and returns the plaintext string, or an error if decryption or
// authentication fails.
func decryptRegion(key []byte, region []byte, ciphertextLen int) (string, error) {
	ciphertext, nonce, tag, err := format.UnpackRegion(region, ciphertextLen)
	if err != nil {
		return "", err
	}
	sealed := append(append([]byte{}, ciphertext...), tag...)

	plaintext, err := primitives.Open(key, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", slamerrors.ErrEntryAuthFail, err)
	}
	return string(plaintext), nil
}
