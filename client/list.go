package client

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/anvilsmith/microsdc/smb1"
	"github.com/anvilsmith/microsdc/utils"
)

// DirEntry describes one entry returned by List (spec §4.2 "List").
type DirEntry struct {
	Name       string
	Size       uint64
	IsDir      bool
	Attributes uint32
	MTime      uint64 // raw FILETIME, LastWriteTime
}

// ModTime is MTime converted to a time.Time, for callers that would
// rather not handle the raw FILETIME themselves.
func (e DirEntry) ModTime() time.Time { return utils.FiletimeToUnix(e.MTime) }

const findBatchSize = 128

// findFileFixedLen is the size, in bytes, of a SMB_FIND_FILE_BOTH_DIRECTORY_INFO
// entry before its variable-length FileName.
const findFileFixedLen = 94

// List enumerates the immediate children of path via TRANS2 FIND_FIRST2
// and, while the server reports more results, FIND_NEXT2. "." and ".."
// are filtered out (spec §4.2 edge case).
func (c *Client) List(ctx context.Context, path string) ([]DirEntry, error) {
	if err := c.requireReady("list"); err != nil {
		return nil, err
	}
	if err := validatePath(path); err != nil {
		return nil, err
	}

	pattern := path + "\\*"
	if path == "\\" {
		pattern = "\\*"
	}

	entries, searchID, eos, err := c.findFirst2(ctx, pattern)
	if err != nil {
		return nil, err
	}
	all := filterDots(entries)

	for !eos {
		more, moreEOS, err := c.findNext2(ctx, searchID)
		if err != nil {
			return nil, err
		}
		if len(more) == 0 {
			break
		}
		all = append(all, filterDots(more)...)
		eos = moreEOS
	}

	return all, nil
}

func filterDots(entries []DirEntry) []DirEntry {
	out := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (c *Client) findFirst2(ctx context.Context, pattern string) ([]DirEntry, uint16, bool, error) {
	fnameBytes := utils.EncodeNullTerminated(pattern)

	t2params := make([]byte, 12+len(fnameBytes))
	putLE16(t2params[0:2], uint16(smb1.SearchAttrHiddenSystemDirectory))
	putLE16(t2params[2:4], findBatchSize)
	putLE16(t2params[4:6], smb1.FindCloseAtEOS)
	putLE16(t2params[6:8], smb1.FindFileBothDirectoryInfo)
	putLE32(t2params[8:12], 0) // SearchStorageType
	copy(t2params[12:], fnameBytes)

	rparams, rdata, err := c.sendTrans2(ctx, smb1.Trans2FindFirst2, t2params, nil)
	if err != nil {
		return nil, 0, false, err
	}
	if len(rparams) < 10 {
		return nil, 0, false, c.fail(&ProtocolError{Reason: "FIND_FIRST2 result parameters too short"})
	}

	searchID := binary.LittleEndian.Uint16(rparams[0:2])
	eos := binary.LittleEndian.Uint16(rparams[4:6]) != 0

	entries, err := decodeFindEntries(rdata)
	if err != nil {
		return nil, 0, false, c.fail(err)
	}
	return entries, searchID, eos, nil
}

func (c *Client) findNext2(ctx context.Context, searchID uint16) ([]DirEntry, bool, error) {
	fnameBytes := utils.EncodeNullTerminated("")

	t2params := make([]byte, 12+len(fnameBytes))
	putLE16(t2params[0:2], searchID)
	putLE16(t2params[2:4], findBatchSize)
	putLE16(t2params[4:6], smb1.FindFileBothDirectoryInfo)
	putLE32(t2params[6:10], 0)                                       // ResumeKey
	putLE16(t2params[10:12], smb1.FindCloseAtEOS|smb1.FindContinueFromLast)
	copy(t2params[12:], fnameBytes)

	rparams, rdata, err := c.sendTrans2(ctx, smb1.Trans2FindNext2, t2params, nil)
	if err != nil {
		return nil, false, err
	}
	if len(rparams) < 8 {
		return nil, false, c.fail(&ProtocolError{Reason: "FIND_NEXT2 result parameters too short"})
	}

	eos := binary.LittleEndian.Uint16(rparams[2:4]) != 0

	entries, err := decodeFindEntries(rdata)
	if err != nil {
		return nil, false, c.fail(err)
	}
	return entries, eos, nil
}

// decodeFindEntries walks a chain of SMB_FIND_FILE_BOTH_DIRECTORY_INFO
// structures linked by NextEntryOffset.
func decodeFindEntries(data []byte) ([]DirEntry, error) {
	var entries []DirEntry

	for len(data) > 0 {
		if len(data) < findFileFixedLen {
			return entries, &ProtocolError{Reason: "truncated directory entry"}
		}

		next := binary.LittleEndian.Uint32(data[0:4])
		lastWriteTime := binary.LittleEndian.Uint64(data[24:32])
		endOfFile := binary.LittleEndian.Uint64(data[40:48])
		attrs := binary.LittleEndian.Uint32(data[56:60])
		nameLen := int(binary.LittleEndian.Uint32(data[60:64]))

		if findFileFixedLen+nameLen > len(data) {
			return entries, &ProtocolError{Reason: "directory entry filename exceeds buffer"}
		}
		name := utils.DecodeToString(data[findFileFixedLen : findFileFixedLen+nameLen])

		entries = append(entries, DirEntry{
			Name:       name,
			Size:       endOfFile,
			IsDir:      attrs&smb1.AttrDirectory != 0,
			Attributes: attrs,
			MTime:      lastWriteTime,
		})

		if next == 0 {
			break
		}
		if int(next) > len(data) {
			return entries, &ProtocolError{Reason: "NextEntryOffset exceeds buffer"}
		}
		data = data[next:]
	}

	return entries, nil
}

// sendTrans2 drives one TRANS2 request/response and returns the decoded
// result Parameters and Data blocks, located via the response's
// ParameterOffset/DataOffset fields.
func (c *Client) sendTrans2(ctx context.Context, subcommand uint16, t2params, t2data []byte) (respParams, respData []byte, err error) {
	const wordCount = 15
	params := make([]byte, 1+2*wordCount)
	params[0] = wordCount

	putLE16(params[1:3], uint16(len(t2params)))   // TotalParameterCount
	putLE16(params[3:5], uint16(len(t2data)))     // TotalDataCount
	putLE16(params[5:7], 1024)                    // MaxParameterCount
	putLE16(params[7:9], 65535)                   // MaxDataCount
	params[9] = 0                                 // MaxSetupCount
	params[10] = 0                                // Reserved1
	putLE16(params[11:13], 0)                     // Flags
	putLE32(params[13:17], 0)                     // Timeout
	putLE16(params[17:19], 0)                     // Reserved2
	putLE16(params[19:21], uint16(len(t2params))) // ParameterCount
	params[27] = 1                                // SetupCount
	params[28] = 0                                // Reserved3
	putLE16(params[29:31], subcommand)            // Setup[0]

	dataStart := smb1.HeaderSize + 1 + 2*wordCount + 2

	body := []byte{0x00} // Name: empty; dataStart is odd (65), so this byte leaves the parameters at an even offset
	paramOffset := dataStart + len(body)
	body = append(body, t2params...)

	dataOffset := paramOffset + len(t2params)
	body = append(body, t2data...)

	putLE16(params[21:23], uint16(paramOffset)) // ParameterOffset
	putLE16(params[23:25], uint16(len(t2data))) // DataCount
	putLE16(params[25:27], uint16(dataOffset))  // DataOffset

	bc := make([]byte, 2)
	putLE16(bc, uint16(len(body)))
	data := append(bc, body...)

	resp, err := c.tr.SendRecv(ctx, smb1.ComTransaction2, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, params, data)
	if err != nil {
		return nil, nil, c.fail(err)
	}
	if serr := checkStatus(smb1.ComTransaction2, resp.Header.Status); serr != nil {
		return nil, nil, serr
	}
	if len(resp.Params) < 16 {
		return nil, nil, c.fail(&ProtocolError{Reason: "TRANSACTION2 response too short"})
	}

	respParamCount := int(binary.LittleEndian.Uint16(resp.Params[6:8]))
	respParamOffset := int(binary.LittleEndian.Uint16(resp.Params[8:10]))
	respDataCount := int(binary.LittleEndian.Uint16(resp.Params[12:14]))
	respDataOffset := int(binary.LittleEndian.Uint16(resp.Params[14:16]))

	respBase := smb1.HeaderSize + 1 + len(resp.Params) + 2

	paramPad := respParamOffset - respBase
	if paramPad < 0 || 2+paramPad+respParamCount > len(resp.Data) {
		return nil, nil, c.fail(&ProtocolError{Reason: "TRANSACTION2 result parameter range out of bounds"})
	}
	respParams = resp.Data[2+paramPad : 2+paramPad+respParamCount]

	if respDataCount > 0 {
		dataPad := respDataOffset - respBase
		if dataPad < 0 || 2+dataPad+respDataCount > len(resp.Data) {
			return nil, nil, c.fail(&ProtocolError{Reason: "TRANSACTION2 result data range out of bounds"})
		}
		respData = resp.Data[2+dataPad : 2+dataPad+respDataCount]
	}

	return respParams, respData, nil
}
