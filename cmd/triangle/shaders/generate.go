package shaders

//go:generate glslc triangle.vert -o triangle.vert.spv
//go:generate glslc triangle.frag -o triangle.frag.spv
