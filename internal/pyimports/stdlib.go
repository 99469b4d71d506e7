package pyimports

// stdlibModules is the fixed allow-list of Python standard-library
// top-level module names. Any import whose leading dotted segment
// matches an entry here is dropped; everything else is kept as an
// installable third-party dependency.
var stdlibModules = map[string]bool{
	"abc": true, "argparse": true, "array": true, "ast": true, "asyncio": true,
	"atexit": true, "base64": true, "bdb": true, "binascii": true, "bisect": true,
	"builtins": true, "bz2": true, "calendar": true, "cmath": true, "cmd": true,
	"code": true, "codecs": true, "codeop": true, "collections": true, "colorsys": true,
	"compileall": true, "concurrent": true, "configparser": true, "contextlib": true, "copy": true,
	"copyreg": true, "cProfile": true, "csv": true, "ctypes": true, "curses": true,
	"dataclasses": true, "datetime": true, "dbm": true, "decimal": true, "difflib": true,
	"dis": true, "doctest": true, "email": true, "encodings": true, "ensurepip": true,
	"enum": true, "errno": true, "faulthandler": true, "fcntl": true, "filecmp": true,
	"fileinput": true, "fnmatch": true, "fractions": true, "ftplib": true, "functools": true,
	"gc": true, "getopt": true, "getpass": true, "gettext": true, "glob": true,
	"graphlib": true, "grp": true, "gzip": true, "hashlib": true, "heapq": true,
	"hmac": true, "html": true, "http": true, "idlelib": true, "imaplib": true,
	"importlib": true, "inspect": true, "io": true, "ipaddress": true, "itertools": true,
	"json": true, "keyword": true, "linecache": true, "locale": true, "logging": true,
	"lzma": true, "mailbox": true, "marshal": true, "math": true, "mimetypes": true,
	"mmap": true, "modulefinder": true, "msvcrt": true, "multiprocessing": true, "netrc": true,
	"numbers": true, "operator": true, "optparse": true, "os": true, "pathlib": true,
	"pdb": true, "pickle": true, "pickletools": true, "pkgutil": true, "platform": true,
	"plistlib": true, "poplib": true, "posix": true, "pprint": true, "profile": true,
	"pstats": true, "pty": true, "pwd": true, "py_compile": true, "pyclbr": true,
	"pydoc": true, "queue": true, "quopri": true, "random": true, "re": true,
	"readline": true, "reprlib": true, "resource": true, "rlcompleter": true, "runpy": true,
	"sched": true, "secrets": true, "select": true, "selectors": true, "shelve": true,
	"shlex": true, "shutil": true, "signal": true, "site": true, "smtplib": true,
	"socket": true, "socketserver": true, "sqlite3": true, "ssl": true, "stat": true,
	"statistics": true, "string": true, "stringprep": true, "struct": true, "subprocess": true,
	"sys": true, "sysconfig": true, "syslog": true, "tabnanny": true, "tarfile": true,
	"tempfile": true, "termios": true, "test": true, "textwrap": true, "threading": true,
	"time": true, "timeit": true, "tkinter": true, "token": true, "tokenize": true,
	"tomllib": true, "trace": true, "traceback": true, "tracemalloc": true, "tty": true,
	"turtle": true, "turtledemo": true, "types": true, "typing": true, "unicodedata": true,
	"unittest": true, "urllib": true, "uuid": true, "venv": true, "warnings": true,
	"wave": true, "weakref": true, "webbrowser": true, "winreg": true, "winsound": true,
	"wsgiref": true, "xml": true, "xmlrpc": true, "zipapp": true, "zipfile": true,
	"zipimport": true, "zlib": true, "zoneinfo": true,
}

func isStandardLibrary(leadingSegment string) bool {
	return stdlibModules[leadingSegment]
}
