package graphstat

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"gonum.org/v1/gonum/graph"
)

//DB is the sqlite-backed census, used when cage type ids must survive
//between runs. Candidate rows are narrowed down by the stored invariants
//and confirmed by the exact matcher. Ids are the rowids, starting at 1.
type DB struct {
	sq   *sql.DB
	last *entry
}

//OpenDB opens the census database at path, creating it when absent.
func OpenDB(path string) (*DB, error) {
	sq, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, Error{err.Error(), []string{"OpenDB"}}
	}
	_, err = sq.Exec(`CREATE TABLE IF NOT EXISTS graphs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nodes INTEGER NOT NULL,
		edges INTEGER NOT NULL,
		degseq TEXT NOT NULL,
		adj TEXT NOT NULL
	)`)
	if err != nil {
		sq.Close()
		return nil, Error{err.Error(), []string{"OpenDB"}}
	}
	return &DB{sq: sq}, nil
}

func (d *DB) Close() error {
	return d.sq.Close()
}

//Query returns the stored id of g's isomorphism class, or -1 when the
//class is new. An unknown graph is remembered for a following Register.
func (d *DB) Query(g graph.Undirected) (int, error) {
	e := fingerprint(g)
	d.last = e
	rows, err := d.sq.Query("SELECT id, adj FROM graphs WHERE nodes = ? AND edges = ? AND degseq = ?",
		e.nodes, e.edges, encodeInts(e.degseq))
	if err != nil {
		return -1, Error{err.Error(), []string{"Query"}}
	}
	defer rows.Close()
	for rows.Next() {
		var id int
		var adj string
		if err := rows.Scan(&id, &adj); err != nil {
			return -1, Error{err.Error(), []string{"Query"}}
		}
		cand := &entry{nodes: e.nodes, edges: e.edges, degseq: e.degseq, adj: decodeAdj(adj, e.nodes)}
		if isomorphic(cand, e) {
			d.last = nil
			return id, nil
		}
	}
	if err := rows.Err(); err != nil {
		return -1, Error{err.Error(), []string{"Query"}}
	}
	return -1, nil
}

//Register files the last queried graph and returns its fresh id.
func (d *DB) Register() (int, error) {
	if d.last == nil {
		return -1, Error{"Register without a preceding Query", []string{"Register"}}
	}
	res, err := d.sq.Exec("INSERT INTO graphs (nodes, edges, degseq, adj) VALUES (?, ?, ?, ?)",
		d.last.nodes, d.last.edges, encodeInts(d.last.degseq), encodeAdj(d.last.adj))
	if err != nil {
		return -1, Error{err.Error(), []string{"Register"}}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return -1, Error{err.Error(), []string{"Register"}}
	}
	d.last = nil
	return int(id), nil
}

//Len returns the number of stored classes.
func (d *DB) Len() (int, error) {
	var n int
	if err := d.sq.QueryRow("SELECT COUNT(*) FROM graphs").Scan(&n); err != nil {
		return 0, Error{err.Error(), []string{"Len"}}
	}
	return n, nil
}

func encodeInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ",")
}

//edge list as "a-b" tokens with a < b, the relabeled node numbering.
func encodeAdj(adj [][]int) string {
	var b strings.Builder
	for i, nbs := range adj {
		for _, j := range nbs {
			if i < j {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				fmt.Fprintf(&b, "%d-%d", i, j)
			}
		}
	}
	return b.String()
}

func decodeAdj(s string, n int) [][]int {
	adj := make([][]int, n)
	for _, tok := range strings.Fields(s) {
		parts := strings.SplitN(tok, "-", 2)
		if len(parts) != 2 {
			continue
		}
		a, err1 := strconv.Atoi(parts[0])
		b, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || a < 0 || b < 0 || a >= n || b >= n {
			continue
		}
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	for i := range adj {
		sort.Ints(adj[i])
	}
	return adj
}
