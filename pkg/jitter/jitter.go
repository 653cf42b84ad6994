// Package jitter считает задержки повторов с экспоненциальным ростом и случайной добавкой,
// чтобы повторы после общего сбоя брокера не приходили одновременно.
package jitter

import (
	"math/rand"
	"time"
)

// DefaultJitter — доля задержки, добавляемая случайно (до +50%).
const DefaultJitter = 0.5

// Backoff описывает политику задержек между попытками.
type Backoff struct {
	Base   time.Duration // задержка перед первым повтором
	Max    time.Duration // потолок задержки без учёта джиттера
	Factor float64       // доля случайной добавки, 0 отключает джиттер
}

// NewBackoff создаёт политику с DefaultJitter.
func NewBackoff(base, max time.Duration) Backoff {
	return Backoff{Base: base, Max: max, Factor: DefaultJitter}
}

// Delay возвращает задержку перед повтором attempt (нумерация с нуля).
// Результат лежит в [d, d*(1+Factor)], где d = min(Base*2^attempt, Max).
func (b Backoff) Delay(attempt int) time.Duration {
	d := b.Base
	for i := 0; i < attempt && d < b.Max; i++ {
		d *= 2
	}
	if d > b.Max {
		d = b.Max
	}

	return Duration(d, b.Factor)
}

// Duration добавляет к d случайную долю не больше factor.
func Duration(d time.Duration, factor float64) time.Duration {
	if factor <= 0 || d <= 0 {
		return d
	}

	return d + time.Duration(rand.Float64()*factor*float64(d))
}
