// Package correctvt exposes a corrector as a SQLite virtual table.
//
//	CREATE VIRTUAL TABLE fix USING entity_correct(entities, max_size=50, index=tree);
//	SELECT value, distance FROM fix WHERE value MATCH 'the cbt ate the bag';
//
// The first argument names the table holding the corpus (see package store).
// The corrector is built from it on the first query and reused for the life
// of the virtual table. After changing the corpus table, reload it through
// an entity_correct_admin table:
//
//	CREATE VIRTUAL TABLE fix_admin USING entity_correct_admin;
//	SELECT op FROM fix_admin WHERE op MATCH 'fix';
package correctvt
