// Implements the ProcessQueue used for both the ready and the waiting queue.
// PCBs are appended on arrival or routing and leave by dequeue or by pid.

package sim

import (
	"fmt"
	"strings"
)

// ProcessQueue is a FIFO queue of PCBs that also supports removal by pid.
// The simulator owns every queue; policies only read them and request changes
// through an Action.
type ProcessQueue struct {
	queue []*PCB
}

// Enqueue adds a PCB to the back of the queue.
func (pq *ProcessQueue) Enqueue(p *PCB) {
	if p == nil {
		panic("Enqueue: pcb must not be nil")
	}
	pq.queue = append(pq.queue, p)
}

func (pq *ProcessQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range pq.queue {
		sb.WriteString(fmt.Sprint(p.PID))
		if i < len(pq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of PCBs in the queue.
func (pq *ProcessQueue) Len() int {
	return len(pq.queue)
}

// Peek returns the PCB at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (pq *ProcessQueue) Peek() *PCB {
	if len(pq.queue) == 0 {
		return nil
	}
	return pq.queue[0]
}

// Dequeue removes and returns the PCB at the front of the queue.
// Returns nil if the queue is empty.
func (pq *ProcessQueue) Dequeue() *PCB {
	if len(pq.queue) == 0 {
		return nil
	}
	p := pq.queue[0]
	pq.queue[0] = nil
	pq.queue = pq.queue[1:]
	return p
}

// Find returns the PCB with the given pid, or nil.
func (pq *ProcessQueue) Find(pid int) *PCB {
	for _, p := range pq.queue {
		if p.PID == pid {
			return p
		}
	}
	return nil
}

// Remove detaches the PCB with the given pid, preserving the order of the rest.
// Returns nil if no such PCB is queued.
func (pq *ProcessQueue) Remove(pid int) *PCB {
	for i, p := range pq.queue {
		if p.PID == pid {
			pq.queue = append(pq.queue[:i:i], pq.queue[i+1:]...)
			return p
		}
	}
	return nil
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers MUST NOT
// append to or reslice it. Use Remove/Enqueue to change membership.
func (pq *ProcessQueue) Items() []*PCB {
	return pq.queue
}

// PIDs returns the pids in queue order.
func (pq *ProcessQueue) PIDs() []int {
	pids := make([]int, len(pq.queue))
	for i, p := range pq.queue {
		pids[i] = p.PID
	}
	return pids
}

// clear drops every PCB.
func (pq *ProcessQueue) clear() {
	pq.queue = nil
}
