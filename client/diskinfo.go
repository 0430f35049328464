package client

import (
	"context"
	"encoding/binary"

	"github.com/anvilsmith/microsdc/smb1"
)

// DiskInfo reports the microSD share's total and free space (spec §4.2
// "DiskInfo"), queried via TRANS2 QUERY_FS_INFORMATION.
type DiskInfo struct {
	TotalBytes uint64
	FreeBytes  uint64
}

// DiskInfo queries free/total space on the connected share.
func (c *Client) DiskInfo(ctx context.Context) (DiskInfo, error) {
	if err := c.requireReady("diskinfo"); err != nil {
		return DiskInfo{}, err
	}

	t2params := make([]byte, 2)
	putLE16(t2params, smb1.QueryFSSizeInfo)

	_, rdata, err := c.sendTrans2(ctx, smb1.Trans2QueryFSInformation, t2params, nil)
	if err != nil {
		return DiskInfo{}, err
	}
	if len(rdata) < 24 {
		return DiskInfo{}, c.fail(&ProtocolError{Reason: "QUERY_FS_SIZE_INFO result too short"})
	}

	totalUnits := binary.LittleEndian.Uint64(rdata[0:8])
	freeUnits := binary.LittleEndian.Uint64(rdata[8:16])
	sectorsPerUnit := binary.LittleEndian.Uint32(rdata[16:20])
	bytesPerSector := binary.LittleEndian.Uint32(rdata[20:24])

	unitBytes := uint64(sectorsPerUnit) * uint64(bytesPerSector)

	return DiskInfo{
		TotalBytes: totalUnits * unitBytes,
		FreeBytes:  freeUnits * unitBytes,
	}, nil
}
