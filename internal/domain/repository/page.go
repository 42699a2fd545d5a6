package repository

// Page paginación por desplazamiento (skip/limit).
type Page struct {
	Skip  int
	Limit int
}
