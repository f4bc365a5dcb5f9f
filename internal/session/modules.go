package session

import (
	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/modules/clock"
	"github.com/specialistvlad/burstworld/modules/print"
	"github.com/specialistvlad/burstworld/modules/transform"
)

// coreModules is the definitive list of all modules that are compiled into
// the burstworld binary.
var coreModules = []catalog.Module{
	&clock.Module{},
	&transform.Module{},
	&print.Module{},
}
