package swarm

import "fmt"

const (
	// TblParticles is the name of the sql database table that contains
	// positions and values for particles at each iteration.
	TblParticles = "swarmparticles"
	// TblParticlesBest is the name of the sql database table that contains
	// each particle's personal best position at each iteration.
	TblParticlesBest = "swarmparticlesbest"
	// TblBest is the name of the sql database table that contains the best
	// position for the entire swarm at each iteration.
	TblBest = "swarmbest"
)

func (s *Solver) initdb(ndim int) error {
	if s.Db == nil {
		return nil
	}

	sql := "CREATE TABLE IF NOT EXISTS " + TblParticles + " (particle INTEGER, iter INTEGER, val REAL"
	sql += xdbsql("define", ndim)
	sql += ");"
	if _, err := s.Db.Exec(sql); err != nil {
		return err
	}

	sql = "CREATE TABLE IF NOT EXISTS " + TblParticlesBest + " (particle INTEGER, iter INTEGER, best REAL"
	sql += xdbsql("define", ndim)
	sql += ");"
	if _, err := s.Db.Exec(sql); err != nil {
		return err
	}

	sql = "CREATE TABLE IF NOT EXISTS " + TblBest + " (iter INTEGER, val REAL"
	sql += xdbsql("define", ndim)
	sql += ");"
	if _, err := s.Db.Exec(sql); err != nil {
		return err
	}
	return nil
}

func xdbsql(op string, ndim int) string {
	s := ""
	for i := 0; i < ndim; i++ {
		switch op {
		case "?":
			s += ",?"
		case "define":
			s += fmt.Sprintf(",x%v REAL", i)
		case "x":
			s += fmt.Sprintf(",x%v", i)
		default:
			panic("invalid db op " + op)
		}
	}
	return s
}

func pos2iface(pos []float64) []interface{} {
	iface := []interface{}{}
	for _, v := range pos {
		iface = append(iface, v)
	}
	return iface
}

// updatedb records one completed iteration.  pbVals[i] is the objective
// value at pop[i].Best, which the particle itself does not carry.
func (s *Solver) updatedb(pop Population, pbVals []float64, iter int, bestPos []float64, bestVal float64) error {
	if s.Db == nil {
		return nil
	}

	ndim := len(bestPos)
	tx, err := s.Db.Begin()
	if err != nil {
		return err
	}

	s0 := "INSERT INTO " + TblParticles + " (particle,iter,val" + xdbsql("x", ndim) + ") VALUES (?,?,?" + xdbsql("?", ndim) + ");"
	s1 := "INSERT INTO " + TblParticlesBest + " (particle,iter,best" + xdbsql("x", ndim) + ") VALUES (?,?,?" + xdbsql("?", ndim) + ");"
	for i, p := range pop {
		args := []interface{}{p.Id, iter, p.Val}
		args = append(args, pos2iface(p.Pos)...)
		if _, err := tx.Exec(s0, args...); err != nil {
			tx.Rollback()
			return err
		}

		args = []interface{}{p.Id, iter, pbVals[i]}
		args = append(args, pos2iface(p.Best)...)
		if _, err := tx.Exec(s1, args...); err != nil {
			tx.Rollback()
			return err
		}
	}

	s2 := "INSERT INTO " + TblBest + " (iter,val" + xdbsql("x", ndim) + ") VALUES (?,?" + xdbsql("?", ndim) + ");"
	args := []interface{}{iter, bestVal}
	args = append(args, pos2iface(bestPos)...)
	if _, err := tx.Exec(s2, args...); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
