package client

import (
	"context"
	"encoding/binary"

	"github.com/anvilsmith/microsdc/smb1"
	"github.com/anvilsmith/microsdc/utils"
)

// FileInfo is the result of Stat (spec §4.2 "Stat" is a supplemented
// single-entry query, distinct from the batch results of List).
type FileInfo struct {
	Size  uint64
	IsDir bool
}

// Stat queries a single path's size and directory flag via TRANS2
// QUERY_PATH_INFORMATION, without opening a handle.
func (c *Client) Stat(ctx context.Context, path string) (FileInfo, error) {
	if err := c.requireReady("stat"); err != nil {
		return FileInfo{}, err
	}
	if err := validatePath(path); err != nil {
		return FileInfo{}, err
	}

	nameBytes := utils.EncodeNullTerminated(path)

	t2params := make([]byte, 6+len(nameBytes))
	putLE16(t2params[0:2], smb1.QueryFileStandardInfo)
	putLE32(t2params[2:6], 0) // Reserved
	copy(t2params[6:], nameBytes)

	_, rdata, err := c.sendTrans2(ctx, smb1.Trans2QueryPathInformation, t2params, nil)
	if err != nil {
		return FileInfo{}, err
	}
	if len(rdata) < 22 {
		return FileInfo{}, c.fail(&ProtocolError{Reason: "QUERY_FILE_STANDARD_INFO result too short"})
	}

	endOfFile := binary.LittleEndian.Uint64(rdata[8:16])
	directory := rdata[21] != 0

	return FileInfo{Size: endOfFile, IsDir: directory}, nil
}
