/*
Package containers provides the engine's generic, allocator-aware container
library: a dynamic array, a circular-buffer queue, a contiguous stack, and a
Robin-Hood open-addressing hash table, all built on a shared
ownership/allocation base.

Every container exclusively owns exactly one allocator-provided buffer, sized
in elements, freed on Release or swapped out on reallocation. Growth follows a
byte-size-banded policy: small elements grow aggressively to amortize
relocation cost, large elements grow conservatively to bound wasted memory.

Core Concepts:

  - Allocator: a capability handing out and reclaiming element buffers.
    Allocator equality decides whether a move can steal a buffer or must
    relocate element-wise.
  - Array: contiguous buffer with amortized O(1) append and O(n)
    insert/erase at arbitrary positions.
  - Queue: fixed-capacity ring with O(1) push-back/pop-front; growth
    reallocates and linearizes.
  - Stack: contiguous LIFO buffer with call-stack-style helpers (Dup,
    SwapTop, RotateTop, Drop, frames).
  - Table: open-addressing map using Robin-Hood displacement and
    backward-shift deletion, no tombstones.

Basic Usage:

	// Dynamic array
	arr := containers.NewArray[int]()
	arr.Append(1, 2, 3)
	arr.Insert(1, 9) // {1, 9, 2, 3}

	// Hash table
	tbl := containers.NewTable[string, int]()
	tbl.Put("health", 100)
	hp, ok := tbl.Get("health")

	// Pooled allocation for small scratch buffers
	pool := containers.NewPoolAllocator[int](32)
	scratch := containers.NewStackWith[int](pool)

Containers are single-owner and not internally synchronized; concurrent
mutation of one instance requires external synchronization.

Containers is part of the Akhanda engine but also works as a standalone
library.
*/
package containers
