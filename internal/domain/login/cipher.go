package login

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
)

// Cipher маскирует ip и device_id: AES-CBC с нулевым IV, PKCS#7, base64.
// Нулевой IV делает шифрование детерминированным, на этом держится группировка дублей
// по зашифрованным значениям в БД.
type Cipher struct {
	block cipher.Block
}

func NewCipher(key string) (*Cipher, error) {
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return &Cipher{block: block}, nil
}

func (c *Cipher) Encrypt(plaintext string) string {
	data := []byte(plaintext)
	padding := aes.BlockSize - len(data)%aes.BlockSize
	data = append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)

	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(c.block, make([]byte, aes.BlockSize)).CryptBlocks(out, data)

	return base64.StdEncoding.EncodeToString(out)
}

func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext is not a multiple of the block size", ErrDecrypt)
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(c.block, make([]byte, aes.BlockSize)).CryptBlocks(out, data)

	padding := int(out[len(out)-1])
	if padding == 0 || padding > aes.BlockSize || padding > len(out) {
		return "", fmt.Errorf("%w: bad padding", ErrDecrypt)
	}
	for _, b := range out[len(out)-padding:] {
		if int(b) != padding {
			return "", fmt.Errorf("%w: bad padding", ErrDecrypt)
		}
	}

	return string(out[:len(out)-padding]), nil
}
