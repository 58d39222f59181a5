/*
Package sdf provides a writer for molecules in the MDL SD file format, using
V2000 molfiles with 3D coordinates.

The format is described in "CTfile Formats" by Accelrys (now BIOVIA).
*/
package sdf
