package message

import (
	"bytes"

	"github.com/sigurn/crc16"

	"github.com/avlink/mavdialect/primitive"
)

var mcrf4xxTable = crc16.MakeTable(crc16.CRC16_MCRF4XX)

// crcExtraSeed computes the CRC "extra byte" for a message: the low byte
// XOR'd with the high byte of a CRC16/MCRF4XX checksum run over the
// message's name and its *sorted, regular-only* fields (spec.md §4.4.2).
// Extension fields never participate — a dialect can append extension
// fields to an existing message without invalidating the checksum older
// implementations of that message compute.
func crcExtraSeed(name string, sorted []*Field) byte {
	var buf bytes.Buffer
	buf.WriteString(name)
	buf.WriteByte(' ')
	for _, f := range sorted {
		buf.WriteString(primitive.SeedTypeName(f.BaseType))
		buf.WriteByte(' ')
		buf.WriteString(f.Name)
		buf.WriteByte(' ')
		if f.IsArray() {
			buf.WriteByte(byte(f.ArrayLen))
		}
	}
	sum := crc16.Checksum(buf.Bytes(), mcrf4xxTable)
	return byte(sum) ^ byte(sum>>8)
}
