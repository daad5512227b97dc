package model

import "time"

// LifecycleStatus is the lifecycle code carried on accounts and overdraft
// instructions. Compared by value, never by identity.
type LifecycleStatus string

// LifecycleEffective marks an account or instruction currently in effect.
const LifecycleEffective LifecycleStatus = "EF"

type Account struct {
	AccountNumber   string
	LifecycleStatus LifecycleStatus
}

// OverdraftInstruction is a read-only coverage rule sourced externally.
// A nil EffectiveEnd means the instruction is open-ended.
type OverdraftInstruction struct {
	OverdraftAccount Account
	LifecycleStatus  LifecycleStatus
	EffectiveStart   time.Time
	EffectiveEnd     *time.Time
}
