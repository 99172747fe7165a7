//Package render turns scalar lattice snapshots into images: palette lookup
//tables built with colorgrad, labelled GIF animations, gonum/plot heatmaps
//and go-chart time series. Every writer goes through an afero.Fs so callers
//can target the OS or an in-memory file system.
package render
