//Package jacobi solves the stream function of flow through a square box
//with one inlet and one outlet by Jacobi relaxation of Laplace's equation,
//and reads and writes the flat text format used to hand the resulting
//velocity field to a renderer.
//
//The data file starts with a "rows cols" header followed by one line per
//interior cell:
//
//	row col vel_x vel_y scaled_speed
package jacobi
