/* Package main: bigforth -- a Forth dialect over arbitrary-precision integers

bigforth is an interactive interpreter for a small stack-oriented
concatenative language whose value domain is signed integers of
unbounded size. A session is a sequence of lines; each line is a run of
whitespace-separated tokens fed to the outer interpreter.

Primitive tokens (+, DUP, ., SWAP, ...) act directly on a value stack.
A colon-definition

	: SQR DUP * ;

compiles a new named word into the dictionary: everything between ":"
and ";" is appended to a flat instruction stream instead of being run
immediately. Structured control-flow words (IF/ELSE/THEN, DO/LOOP,
BEGIN/WHILE/REPEAT, CASE/OF/ENDOF/ENDCASE) only have meaning while
compiling; they lower to branch instructions with back-patched operands,
tracked on a compile-time control stack that exists only for the
duration of the enclosing colon-definition.

Calling a word by name resolves to a dictionary slot once, at compile
time (CALL idx); redefining a word later changes what any CALL already
compiled against its old slot will run, since the call is late-bound by
index rather than by name. This is intentional: it lets a word be
redefined mid-session without walking every other word that mentions it.

A VARIABLE declares a named storage cell and simultaneously defines an
accessor word of the same name whose body pushes the cell's index; @
and ! then read and write through that index, so "X @" and "X !" read
like ordinary Forth despite there being no separate address space.

Running a compiled word executes its instruction stream linearly from
index 0, honoring branches, nested CALLs (a fresh activation sharing the
same stacks), and a runtime loop stack for DO/LOOP. Any primitive can
set a process-wide error flag, which aborts the rest of the current
top-level line -- both the word being executed and the outer token
loop -- without otherwise disturbing the value stack, dictionary, or
variable table. The flag is cleared again at the start of the next line.

LOAD "path" recursively feeds another file's lines through the same
outer interpreter, so included files can themselves define words, set
variables, or LOAD further files.
*/
package main
