// Package hdf is a minimal read-only binding to the HDF5 C library,
// exposing just enough surface to pull a string attribute out of a
// nested group: open a file, list a group's children, read an attribute.
package hdf

/*
#cgo LDFLAGS: -lhdf5

#include <stdlib.h>
#include <string.h>
#include <hdf5.h>

// H5T_C_S1 expands to a comma expression that cgo cannot evaluate,
// so the memory datatypes are built on the C side.
static hid_t fixedStrType(size_t n) {
	hid_t t = H5Tcopy(H5T_C_S1);
	if (t < 0) {
		return t;
	}
	if (H5Tset_size(t, n) < 0) {
		H5Tclose(t);
		return -1;
	}
	return t;
}

static hid_t varStrType(void) {
	return fixedStrType(H5T_VARIABLE);
}

static void silenceErrors(void) {
	H5Eset_auto2(H5E_DEFAULT, NULL, NULL);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

func init() {
	// Keep libhdf5's error stack off stderr. Unreadable files are an
	// expected condition and surface as Go errors instead.
	C.silenceErrors()
}

// File is an open HDF5 file handle.
type File struct {
	id   C.hid_t
	path string
}

// Open opens an HDF5 file read-only. Files that are missing, truncated,
// or not HDF5 at all fail here with a single distinguishable error.
func Open(path string) (*File, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	id := C.H5Fopen(cpath, C.H5F_ACC_RDONLY, C.H5P_DEFAULT)
	if id < 0 {
		return nil, fmt.Errorf("hdf: cannot open %s", path)
	}
	return &File{id: id, path: path}, nil
}

// Close releases the file handle.
func (f *File) Close() error {
	if C.H5Fclose(f.id) < 0 {
		return fmt.Errorf("hdf: error closing %s", f.path)
	}
	return nil
}

// ChildNames returns the link names directly under group, in lexical
// order.
func (f *File) ChildNames(group string) ([]string, error) {
	cgroup := C.CString(group)
	defer C.free(unsafe.Pointer(cgroup))

	gid := C.H5Gopen2(f.id, cgroup, C.H5P_DEFAULT)
	if gid < 0 {
		return nil, fmt.Errorf("hdf: no group %s in %s", group, f.path)
	}
	defer C.H5Gclose(gid)

	var info C.H5G_info_t
	if C.H5Gget_info(gid, &info) < 0 {
		return nil, fmt.Errorf("hdf: cannot stat group %s in %s", group, f.path)
	}

	self := C.CString(".")
	defer C.free(unsafe.Pointer(self))

	names := make([]string, 0, uint64(info.nlinks))
	for i := C.hsize_t(0); i < C.hsize_t(info.nlinks); i++ {
		n := C.H5Lget_name_by_idx(gid, self, C.H5_INDEX_NAME, C.H5_ITER_INC, i, nil, 0, C.H5P_DEFAULT)
		if n < 0 {
			return nil, fmt.Errorf("hdf: cannot read link %d of group %s in %s", i, group, f.path)
		}
		buf := (*C.char)(C.malloc(C.size_t(n) + 1))
		if C.H5Lget_name_by_idx(gid, self, C.H5_INDEX_NAME, C.H5_ITER_INC, i, buf, C.size_t(n)+1, C.H5P_DEFAULT) < 0 {
			C.free(unsafe.Pointer(buf))
			return nil, fmt.Errorf("hdf: cannot read link %d of group %s in %s", i, group, f.path)
		}
		names = append(names, C.GoString(buf))
		C.free(unsafe.Pointer(buf))
	}
	return names, nil
}

// StringAttr reads the string scalar attribute attr stored on the object
// at path object. Both fixed-length and variable-length string storage
// are handled.
func (f *File) StringAttr(object, attr string) (string, error) {
	cobject := C.CString(object)
	defer C.free(unsafe.Pointer(cobject))
	cattr := C.CString(attr)
	defer C.free(unsafe.Pointer(cattr))

	aid := C.H5Aopen_by_name(f.id, cobject, cattr, C.H5P_DEFAULT, C.H5P_DEFAULT)
	if aid < 0 {
		return "", fmt.Errorf("hdf: no attribute %s on %s in %s", attr, object, f.path)
	}
	defer C.H5Aclose(aid)

	tid := C.H5Aget_type(aid)
	if tid < 0 {
		return "", fmt.Errorf("hdf: cannot read type of attribute %s on %s in %s", attr, object, f.path)
	}
	defer C.H5Tclose(tid)

	if C.H5Tget_class(tid) != C.H5T_STRING {
		return "", fmt.Errorf("hdf: attribute %s on %s in %s is not a string", attr, object, f.path)
	}

	if C.H5Tis_variable_str(tid) > 0 {
		return f.readVarStr(aid, object, attr)
	}
	return f.readFixedStr(aid, tid, object, attr)
}

func (f *File) readVarStr(aid C.hid_t, object, attr string) (string, error) {
	mid := C.varStrType()
	if mid < 0 {
		return "", fmt.Errorf("hdf: cannot build string type for attribute %s on %s in %s", attr, object, f.path)
	}
	defer C.H5Tclose(mid)

	var cs *C.char
	if C.H5Aread(aid, mid, unsafe.Pointer(&cs)) < 0 || cs == nil {
		return "", fmt.Errorf("hdf: cannot read attribute %s on %s in %s", attr, object, f.path)
	}
	s := C.GoString(cs)
	C.free(unsafe.Pointer(cs))
	return s, nil
}

func (f *File) readFixedStr(aid, tid C.hid_t, object, attr string) (string, error) {
	size := C.H5Tget_size(tid)
	if size == 0 {
		return "", fmt.Errorf("hdf: zero-length attribute %s on %s in %s", attr, object, f.path)
	}
	buf := C.malloc(size + 1)
	defer C.free(buf)
	C.memset(buf, 0, size+1)

	mid := C.fixedStrType(size)
	if mid < 0 {
		return "", fmt.Errorf("hdf: cannot build string type for attribute %s on %s in %s", attr, object, f.path)
	}
	defer C.H5Tclose(mid)

	if C.H5Aread(aid, mid, buf) < 0 {
		return "", fmt.Errorf("hdf: cannot read attribute %s on %s in %s", attr, object, f.path)
	}
	return C.GoString((*C.char)(buf)), nil
}
