package client

import "errors"

var errNoServer = errors.New("client app requires a server")
