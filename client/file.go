package client

import (
	"context"
	"encoding/binary"
	"io"

	"github.com/anvilsmith/microsdc/smb1"
	"github.com/anvilsmith/microsdc/utils"
)

// FileID is a server-assigned NT_CREATE_ANDX file handle.
type FileID uint16

// File is an open handle to a single remote file, opened via Client.Open.
type File struct {
	c    *Client
	id   FileID
	size uint64
}

// Size is the remote file's length as reported by NT_CREATE_ANDX at open
// time. It is not refreshed after writes performed through this handle.
func (f *File) Size() uint64 { return f.size }

// Open opens path with the given Access, returning a handle for Read,
// Write and Close (spec §4.2 "Open").
func (c *Client) Open(ctx context.Context, path string, access Access) (*File, error) {
	if err := c.requireReady("open"); err != nil {
		return nil, err
	}
	if err := validatePath(path); err != nil {
		return nil, err
	}

	p := accessMasks(access, false)

	const wordCount = 24
	params := make([]byte, 1+2*wordCount)
	params[0] = wordCount
	params[1] = 0xff // AndXCommand

	nameUnits := utils.EncodedStringLen(path)
	putLE16(params[6:8], uint16(nameUnits))
	putLE32(params[8:12], 0)  // Flags
	putLE32(params[12:16], 0) // RootDirectoryFID
	putLE32(params[16:20], p.desiredAccess)
	// AllocationSize [20:28] left zero
	putLE32(params[28:32], 0) // ExtFileAttributes
	putLE32(params[32:36], p.shareAccess)
	putLE32(params[36:40], p.disposition)
	putLE32(params[40:44], p.createOptions)
	putLE32(params[44:48], 0x02) // ImpersonationLevel: SECURITY_IMPERSONATION
	// SecurityFlags [48] left zero

	dataStart := smb1.HeaderSize + 1 + 2*wordCount + 2
	var body []byte
	body = append(body, utils.AlignPad(dataStart)...)
	body = append(body, utils.EncodeStringToBytes(path)...)

	bc := make([]byte, 2)
	putLE16(bc, uint16(len(body)))
	data := append(bc, body...)

	resp, err := c.tr.SendRecv(ctx, smb1.ComNTCreateAndX, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, params, data)
	if err != nil {
		return nil, c.fail(err)
	}
	if err := checkStatus(smb1.ComNTCreateAndX, resp.Header.Status); err != nil {
		return nil, err
	}
	if len(resp.Params) < 68 {
		return nil, c.fail(&ProtocolError{Reason: "NT_CREATE_ANDX response too short"})
	}

	fid := binary.LittleEndian.Uint16(resp.Params[5:7])
	endOfFile := binary.LittleEndian.Uint64(resp.Params[55:63])

	return &File{c: c, id: FileID(fid), size: endOfFile}, nil
}

// readChunkSize bounds a single READ_ANDX request to the server's
// negotiated buffer size, leaving headroom for the fixed response shape.
func (c *Client) readChunkSize() int {
	n := int(c.tr.MaxBufferSize())
	if n <= 64 {
		n = 4096
	}
	return n - 64
}

// ReadAt reads up to len(p) bytes starting at offset, returning the
// number of bytes read. A single call reads at most readChunkSize bytes;
// when the server returns fewer bytes than were requested, ReadAt returns
// them together with io.EOF.
func (f *File) ReadAt(ctx context.Context, p []byte, offset uint64) (int, error) {
	if err := f.c.requireReady("read"); err != nil {
		return 0, err
	}

	max := f.c.readChunkSize()
	if len(p) > max {
		p = p[:max]
	}

	const wordCount = 10
	params := make([]byte, 1+2*wordCount)
	params[0] = wordCount
	params[1] = 0xff
	putLE16(params[5:7], uint16(f.id))
	putLE32(params[7:11], uint32(offset))
	putLE16(params[11:13], uint16(len(p)))
	putLE16(params[13:15], uint16(len(p)))
	// Reserved/Timeout [15:19], Remaining [19:21] left zero.

	resp, err := f.c.tr.SendRecv(ctx, smb1.ComReadAndX, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, params, []byte{0x00, 0x00})
	if err != nil {
		return 0, f.c.fail(err)
	}
	if err := checkStatus(smb1.ComReadAndX, resp.Header.Status); err != nil {
		return 0, err
	}
	if len(resp.Params) < 14 {
		return 0, f.c.fail(&ProtocolError{Reason: "READ_ANDX response too short"})
	}

	dataLen := int(binary.LittleEndian.Uint16(resp.Params[10:12]))
	dataOffset := int(binary.LittleEndian.Uint16(resp.Params[12:14]))

	// resp.Data begins with the 2-byte ByteCount field; dataOffset
	// counts from the start of the SMB header, so the pad between the
	// ByteCount field and the raw read bytes is whatever the server
	// inserted to align the data.
	dataStart := smb1.HeaderSize + 1 + len(resp.Params) + 2
	pad := dataOffset - dataStart
	if pad < 0 || 2+pad+dataLen > len(resp.Data) {
		return 0, f.c.fail(&ProtocolError{Reason: "READ_ANDX data offset/length out of range"})
	}

	n := copy(p, resp.Data[2+pad:2+pad+dataLen])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt writes p at offset, returning the number of bytes accepted by
// the server. A single call sends at most readChunkSize bytes, so a longer
// p is only partly written.
func (f *File) WriteAt(ctx context.Context, p []byte, offset uint64) (int, error) {
	if err := f.c.requireReady("write"); err != nil {
		return 0, err
	}

	max := f.c.readChunkSize()
	if len(p) > max {
		p = p[:max]
	}

	const wordCount = 12
	params := make([]byte, 1+2*wordCount)
	params[0] = wordCount
	params[1] = 0xff
	putLE16(params[5:7], uint16(f.id))
	putLE32(params[7:11], uint32(offset))
	putLE32(params[11:15], 0) // Reserved/Timeout
	putLE16(params[15:17], 0) // WriteMode
	putLE16(params[17:19], 0) // Remaining
	putLE16(params[19:21], 0) // DataLengthHigh

	dataStart := smb1.HeaderSize + 1 + 2*wordCount + 2
	pad := utils.AlignPad(dataStart)
	dataOffset := dataStart + len(pad)
	putLE16(params[21:23], uint16(len(p)))
	putLE16(params[23:25], uint16(dataOffset))

	body := append(append([]byte{}, pad...), p...)
	bc := make([]byte, 2)
	putLE16(bc, uint16(len(body)))
	data := append(bc, body...)

	resp, err := f.c.tr.SendRecv(ctx, smb1.ComWriteAndX, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, params, data)
	if err != nil {
		return 0, f.c.fail(err)
	}
	if err := checkStatus(smb1.ComWriteAndX, resp.Header.Status); err != nil {
		return 0, err
	}
	if len(resp.Params) < 6 {
		return 0, f.c.fail(&ProtocolError{Reason: "WRITE_ANDX response too short"})
	}

	written := int(binary.LittleEndian.Uint16(resp.Params[4:6]))
	return written, nil
}

// Close closes this handle (SMB_COM_CLOSE).
func (f *File) Close(ctx context.Context) error {
	return f.c.closeFID(ctx, f.id)
}

func (c *Client) closeFID(ctx context.Context, id FileID) error {
	params := make([]byte, 1+6)
	params[0] = 0x03 // WordCount
	putLE16(params[1:3], uint16(id))
	putLE32(params[3:7], 0xffffffff) // LastWriteTime: don't change

	resp, err := c.tr.SendRecv(ctx, smb1.ComClose, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, params, []byte{0x00, 0x00})
	if err != nil {
		return c.fail(err)
	}
	return checkStatus(smb1.ComClose, resp.Header.Status)
}

// GetFile opens path for reading and copies its full contents to dst,
// chunking reads to the negotiated buffer size (spec §4.2 "GetFile").
func (c *Client) GetFile(ctx context.Context, path string, dst io.Writer) (int64, error) {
	f, err := c.Open(ctx, path, AccessRead)
	if err != nil {
		return 0, err
	}
	defer f.Close(ctx)

	var total int64
	buf := make([]byte, c.readChunkSize())
	var offset uint64
	for {
		n, err := f.ReadAt(ctx, buf, offset)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
			offset += uint64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// PutFile creates or overwrites path with the contents of src, chunking
// writes to the negotiated buffer size (spec §4.2 "PutFile").
func (c *Client) PutFile(ctx context.Context, path string, src io.Reader) (int64, error) {
	f, err := c.Open(ctx, path, AccessWrite)
	if err != nil {
		return 0, err
	}
	defer f.Close(ctx)

	var total int64
	buf := make([]byte, c.readChunkSize())
	var offset uint64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := f.WriteAt(ctx, buf[:n], offset)
			total += int64(wn)
			offset += uint64(wn)
			if werr != nil {
				return total, werr
			}
			if wn != n {
				return total, &ProtocolError{Reason: "server accepted fewer bytes than sent"}
			}
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, rerr
		}
	}
}
