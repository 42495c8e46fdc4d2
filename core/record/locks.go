package record

import "sync"

// studentLocks serialises whole synchronize runs per student: two concurrent
// edits to different terms of the same student must not interleave, or one
// run's cascade could overwrite the other's freshly written row with a stale
// CGPA. Different students never contend.
//
// Entries are refcounted and removed once idle so the map does not grow with
// the student population.
type studentLocks struct {
	mutex sync.Mutex
	locks map[int]*studentLock
}

type studentLock struct {
	sync.Mutex
	refs int
}

func newStudentLocks() *studentLocks {
	return &studentLocks{locks: make(map[int]*studentLock)}
}

func (sl *studentLocks) lock(studentID int) {
	sl.mutex.Lock()
	l, ok := sl.locks[studentID]
	if !ok {
		l = new(studentLock)
		sl.locks[studentID] = l
	}
	l.refs++
	sl.mutex.Unlock()

	l.Lock()
}

func (sl *studentLocks) unlock(studentID int) {
	sl.mutex.Lock()
	l := sl.locks[studentID]
	l.refs--
	if l.refs == 0 {
		delete(sl.locks, studentID)
	}
	sl.mutex.Unlock()

	l.Unlock()
}
