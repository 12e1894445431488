package ecs

import (
	"reflect"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// ComponentTag is the stable, portable identity of a component kind. It is
// derived from the component's registered name rather than from the host
// language's reflect.Type (which is process-local and would break snapshot
// portability across builds) by hashing the name twice with distinct seeds
// and concatenating the results, following dm-vev-adamant's use of
// cespare/xxhash for content-addressed identifiers elsewhere in that codebase.
type ComponentTag [16]byte

var (
	tagMu       sync.Mutex
	tagByName   = map[string]ComponentTag{}
	nameByTag   = map[ComponentTag]string{}
	typeNameReg = map[reflect.Type]string{}
)

// tagSeedLow and tagSeedHigh salt the two hash halves so the 128-bit tag
// isn't just a repeated 64-bit xxhash digest.
const (
	tagSeedLow  = "brawlcore/component/low"
	tagSeedHigh = "brawlcore/component/high"
)

func deriveTag(name string) ComponentTag {
	var tag ComponentTag
	lo := xxhash.Sum64String(tagSeedLow + ":" + name)
	hi := xxhash.Sum64String(tagSeedHigh + ":" + name)
	for i := 0; i < 8; i++ {
		tag[i] = byte(lo >> (8 * i))
		tag[8+i] = byte(hi >> (8 * i))
	}
	return tag
}

// registerName idempotently associates a component kind's name with its
// derived tag and returns the tag. Re-registering the same name returns the
// same tag. Registering a second Go type under a name already seen is not
// detected: it receives the same tag as the first.
func registerName(name string) ComponentTag {
	tagMu.Lock()
	defer tagMu.Unlock()
	if tag, ok := tagByName[name]; ok {
		return tag
	}
	tag := deriveTag(name)
	tagByName[name] = tag
	nameByTag[tag] = name
	return tag
}

// TagOf returns the stable ComponentTag for component type T, deriving and
// caching it from T's type name on first use.
func TagOf[T any]() ComponentTag {
	var zero T
	t := reflect.TypeOf(zero)
	tagMu.Lock()
	name, cached := typeNameReg[t]
	tagMu.Unlock()
	if !cached {
		name = t.PkgPath() + "." + t.Name()
		tagMu.Lock()
		typeNameReg[t] = name
		tagMu.Unlock()
	}
	return registerName(name)
}

// NameOf returns the registered component name for tag, or "" if unknown.
func NameOf(tag ComponentTag) string {
	tagMu.Lock()
	defer tagMu.Unlock()
	return nameByTag[tag]
}
