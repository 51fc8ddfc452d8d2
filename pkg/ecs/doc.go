// Package ecs is a sparse-set entity-component-system runtime: 32-bit
// entity handles with generation recycling, one ComponentStore[T] per
// component type, change-tick tracking, deferred command buffers, a
// phased cooperative scheduler, typed relations with cascade-delete, and
// a prefab registry with single-parent inheritance.
//
// There is no archetype table and no query cache: a Query walks the
// smallest matching store's dense array directly, which keeps adding a
// new component type a zero-cost operation on every other query. Observer
// callbacks fire synchronously at the point of mutation; a panicking
// observer is recovered and logged through World.Logger rather than
// corrupting the store it was watching.
package ecs
