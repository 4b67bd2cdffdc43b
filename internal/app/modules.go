package app

import (
	"github.com/kilnhq/kiln/internal/builders"
	"github.com/kilnhq/kiln/modules/envsource"
	"github.com/kilnhq/kiln/modules/httpclient"
	"github.com/kilnhq/kiln/modules/printer"
	"github.com/kilnhq/kiln/modules/socketio"
)

// coreModules is the definitive list of builder modules compiled into the
// kiln binary.
var coreModules = []builders.Module{
	&printer.Module{},
	&envsource.Module{},
	&httpclient.Module{},
	&socketio.Module{},
}
