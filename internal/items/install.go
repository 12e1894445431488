package items

import "brawlcore/internal/hydration"

// Install registers every item/element hydrator this package provides, in
// a fixed order, so the set of supported element kinds is deterministic
// per build regardless of map load order (spec.md 9's "dynamic dispatch
// over element kinds" design note; SPEC_FULL's Open Question decision 5).
// Called once from internal/session's session.New.
func Install(reg *hydration.Registry) {
	InstallSword(reg)
	InstallGun(reg)
	InstallConsumables(reg)
	InstallSproinger(reg)
	InstallSlippery(reg)
	InstallCrab(reg)
	InstallUrchin(reg)
	InstallSnail(reg)
	InstallBuss(reg)
	InstallDecoration(reg)
}
