package client

import (
	"context"

	"github.com/anvilsmith/microsdc/smb1"
	"github.com/anvilsmith/microsdc/utils"
)

// bufferString builds a BufferFormat(0x04)+path Unicode data block. offset
// is the absolute byte offset (from the SMB header) at which this block
// begins, needed to decide whether a pad byte is required before the
// Unicode payload (spec §8 "Unicode alignment").
func bufferString(offset int, path string) []byte {
	b := []byte{smb1.BufferFormatASCII}
	b = append(b, utils.AlignPad(offset+1)...)
	b = append(b, utils.EncodeNullTerminated(path)...)
	return b
}

// Mkdir creates a directory (SMB_COM_CREATE_DIRECTORY).
func (c *Client) Mkdir(ctx context.Context, path string) error {
	if err := c.requireReady("mkdir"); err != nil {
		return err
	}
	if err := validatePath(path); err != nil {
		return err
	}

	dataStart := smb1.HeaderSize + 1 + 2
	body := bufferString(dataStart, path)

	bc := make([]byte, 2)
	putLE16(bc, uint16(len(body)))
	data := append(bc, body...)

	resp, err := c.tr.SendRecv(ctx, smb1.ComCreateDirectory, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, []byte{0x00}, data)
	if err != nil {
		return c.fail(err)
	}
	return checkStatus(smb1.ComCreateDirectory, resp.Header.Status)
}

// Rmdir removes an empty directory (SMB_COM_DELETE_DIRECTORY).
func (c *Client) Rmdir(ctx context.Context, path string) error {
	if err := c.requireReady("rmdir"); err != nil {
		return err
	}
	if err := validatePath(path); err != nil {
		return err
	}

	dataStart := smb1.HeaderSize + 1 + 2
	body := bufferString(dataStart, path)

	bc := make([]byte, 2)
	putLE16(bc, uint16(len(body)))
	data := append(bc, body...)

	resp, err := c.tr.SendRecv(ctx, smb1.ComDeleteDirectory, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, []byte{0x00}, data)
	if err != nil {
		return c.fail(err)
	}
	return checkStatus(smb1.ComDeleteDirectory, resp.Header.Status)
}

// Delete removes a single file (SMB_COM_DELETE).
func (c *Client) Delete(ctx context.Context, path string) error {
	if err := c.requireReady("delete"); err != nil {
		return err
	}
	if err := validatePath(path); err != nil {
		return err
	}

	const wordCount = 1
	params := make([]byte, 1+2*wordCount)
	params[0] = wordCount
	putLE16(params[1:3], uint16(smb1.SearchAttrHiddenSystemDirectory))

	dataStart := smb1.HeaderSize + 1 + 2*wordCount + 2
	body := bufferString(dataStart, path)

	bc := make([]byte, 2)
	putLE16(bc, uint16(len(body)))
	data := append(bc, body...)

	resp, err := c.tr.SendRecv(ctx, smb1.ComDelete, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, params, data)
	if err != nil {
		return c.fail(err)
	}
	return checkStatus(smb1.ComDelete, resp.Header.Status)
}

// Rename moves oldPath to newPath (SMB_COM_RENAME). Both paths get their
// own BufferFormat marker and independent alignment pad.
func (c *Client) Rename(ctx context.Context, oldPath, newPath string) error {
	if err := c.requireReady("rename"); err != nil {
		return err
	}
	if err := validatePath(oldPath); err != nil {
		return err
	}
	if err := validatePath(newPath); err != nil {
		return err
	}

	const wordCount = 1
	params := make([]byte, 1+2*wordCount)
	params[0] = wordCount
	putLE16(params[1:3], uint16(smb1.SearchAttrHiddenSystemDirectory))

	dataStart := smb1.HeaderSize + 1 + 2*wordCount + 2
	oldBlock := bufferString(dataStart, oldPath)
	newBlock := bufferString(dataStart+len(oldBlock), newPath)

	body := append(oldBlock, newBlock...)
	bc := make([]byte, 2)
	putLE16(bc, uint16(len(body)))
	data := append(bc, body...)

	resp, err := c.tr.SendRecv(ctx, smb1.ComRename, 0, smb1.Flags2NTStatus|smb1.Flags2Unicode, params, data)
	if err != nil {
		return c.fail(err)
	}
	return checkStatus(smb1.ComRename, resp.Header.Status)
}
