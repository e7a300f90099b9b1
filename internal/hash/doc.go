// Package hash provides the CRC32-Castagnoli checksum used for object
// store integrity headers.
//
// S3 and compatible stores accept a CRC32C of the request body and reject
// the write when it does not match. The checksum travels as the base64 of
// its big-endian bytes:
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	header := hash.EncodeCRC32C(h.Sum32())
//
// crc32 uses SSE4.2 or the ARM CRC extension when present.
package hash
