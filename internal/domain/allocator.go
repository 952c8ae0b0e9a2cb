package domain

import (
	"fmt"
	"sort"

	"github.com/skinrally/backend/pkg/crypto"
)

// allocateTickets picks count distinct ticket numbers from the unsold part
// of [1, totalTickets]. Each unsold number has the same probability of being
// chosen: the pool shrinks by one after every pick, and every pick is
// uniform over what remains. The result is sorted for presentation only.
func allocateTickets(sold map[int]bool, totalTickets, count int) ([]int, error) {
	pool := make([]int, 0, totalTickets-len(sold))
	for number := 1; number <= totalTickets; number++ {
		if !sold[number] {
			pool = append(pool, number)
		}
	}

	if count < 1 || count > len(pool) {
		return nil, fmt.Errorf("cannot allocate %d tickets from a pool of %d", count, len(pool))
	}

	tickets := make([]int, 0, count)
	for i := 0; i < count; i++ {
		picked := crypto.RandIntn(len(pool))
		tickets = append(tickets, pool[picked])
		pool[picked] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}

	sort.Ints(tickets)
	return tickets, nil
}
