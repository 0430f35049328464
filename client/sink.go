package client

import "io"

// Sink and Source are the destinations/sources GetFile and PutFile write
// to and read from. They are exactly io.Writer and io.Reader — this
// client invents no bespoke transfer interface (spec §6).
type Sink = io.Writer
type Source = io.Reader
