package ecs

// placeholderEntity is a negative-space marker: commands inside one
// CommandBuffer that reference an entity spawned earlier in the same
// buffer carry one of these instead of a real EntityID, and Flush
// resolves it to the real handle once the spawn has executed.
type placeholderEntity int

type command interface {
	apply(w *World, resolve func(placeholderEntity) EntityID)
}

type spawnCommand struct {
	placeholder placeholderEntity
}

func (c spawnCommand) apply(w *World, resolve func(placeholderEntity) EntityID) {
	// handled specially in Flush; apply is never called directly for spawns.
}

type addCommand struct {
	target func(resolve func(placeholderEntity) EntityID) EntityID
	run    func(w *World, e EntityID)
}

func (c addCommand) apply(w *World, resolve func(placeholderEntity) EntityID) {
	c.run(w, c.target(resolve))
}

type removeCommand struct {
	target func(resolve func(placeholderEntity) EntityID) EntityID
	run    func(w *World, e EntityID)
}

func (c removeCommand) apply(w *World, resolve func(placeholderEntity) EntityID) {
	c.run(w, c.target(resolve))
}

type destroyCommand struct {
	target func(resolve func(placeholderEntity) EntityID) EntityID
}

func (c destroyCommand) apply(w *World, resolve func(placeholderEntity) EntityID) {
	w.DestroyEntity(c.target(resolve))
}

// EntityRef is a handle a CommandBuffer hands back from Spawn, before the
// entity actually exists. Other commands queued against the same buffer
// may target it; Flush resolves it to a real EntityID as it executes the
// spawn.
type EntityRef struct {
	placeholder placeholderEntity
}

// CommandBuffer records spawn/destroy/add/remove operations for later
// application via Flush, so systems can queue structural changes without
// mutating the world mid-query. Commands apply in submission order;
// two commands touching the same entity apply last-writer-wins.
type CommandBuffer struct {
	commands        []command
	nextPlaceholder placeholderEntity
}

// NewCommandBuffer constructs an empty buffer.
func NewCommandBuffer() *CommandBuffer { return &CommandBuffer{} }

// Spawn queues creation of a new entity and returns a ref other commands
// in the same buffer can target before Flush runs.
func (b *CommandBuffer) Spawn() *EntityRef {
	ph := b.nextPlaceholder
	b.nextPlaceholder++
	ref := &EntityRef{placeholder: ph}
	b.commands = append(b.commands, spawnCommand{placeholder: ph})
	return ref
}

func refTarget(ref *EntityRef, direct EntityID) func(func(placeholderEntity) EntityID) EntityID {
	if ref == nil {
		return func(func(placeholderEntity) EntityID) EntityID { return direct }
	}
	return func(resolve func(placeholderEntity) EntityID) EntityID {
		return resolve(ref.placeholder)
	}
}

// QueueAddOnRef queues AddComponent[T](world, key, resolved(ref), value),
// where resolved(ref) is the real entity once Flush creates it.
func QueueAddOnRef[T any](b *CommandBuffer, ref *EntityRef, key string, value T) {
	b.commands = append(b.commands, addCommand{
		target: refTarget(ref, NullEntity),
		run:    func(w *World, e EntityID) { AddComponent(w, key, e, value) },
	})
}

// QueueAdd queues AddComponent[T](world, key, e, value) against an
// already-real entity.
func QueueAdd[T any](b *CommandBuffer, e EntityID, key string, value T) {
	b.commands = append(b.commands, addCommand{
		target: refTarget(nil, e),
		run:    func(w *World, e EntityID) { AddComponent(w, key, e, value) },
	})
}

// QueueRemove queues RemoveComponent[T](world, key, e).
func QueueRemove[T any](b *CommandBuffer, e EntityID, key string) {
	b.commands = append(b.commands, removeCommand{
		target: refTarget(nil, e),
		run:    func(w *World, e EntityID) { RemoveComponent[T](w, key, e) },
	})
}

// QueueDestroy queues World.DestroyEntity(e).
func (b *CommandBuffer) QueueDestroy(e EntityID) {
	b.commands = append(b.commands, destroyCommand{target: refTarget(nil, e)})
}

// QueueDestroyRef queues destruction of an entity that was itself
// spawned earlier in this same buffer.
func (b *CommandBuffer) QueueDestroyRef(ref *EntityRef) {
	b.commands = append(b.commands, destroyCommand{target: refTarget(ref, NullEntity)})
}

// Flush applies every queued command to w in submission order and clears
// the buffer. Spawn commands create their entity and resolve any
// EntityRef other commands in this flush depend on.
func (b *CommandBuffer) Flush(w *World) error {
	resolved := make(map[placeholderEntity]EntityID)
	resolve := func(ph placeholderEntity) EntityID { return resolved[ph] }

	for _, cmd := range b.commands {
		switch c := cmd.(type) {
		case spawnCommand:
			e, err := w.CreateEntity()
			if err != nil {
				return err
			}
			resolved[c.placeholder] = e
		default:
			cmd.apply(w, resolve)
		}
	}

	b.commands = nil
	b.nextPlaceholder = 0
	return nil
}
