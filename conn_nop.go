package display

import "github.com/rs/zerolog"

// NopConn is a connection without hardware, it accepts all commands and data and logs them at debug level.
type NopConn struct {
	Logger *zerolog.Logger
}

func (c *NopConn) String() string {
	return "nop"
}

func (c *NopConn) log() *zerolog.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return &Logger
}

func (c *NopConn) Close() error {
	c.log().Debug().Msg("nop: close")
	return nil
}

func (c *NopConn) Reset() error {
	c.log().Debug().Msg("nop: reset")
	return nil
}

func (c *NopConn) Command(cmnd byte, args ...byte) error {
	c.log().Debug().
		Hex("command", []byte{cmnd}).
		Hex("args", args).
		Msg("nop: command")
	return nil
}

func (c *NopConn) Data(data ...byte) error {
	c.log().Debug().Int("size", len(data)).Msg("nop: data")
	return nil
}
